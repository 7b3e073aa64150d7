package scene_taste_usecase

import (
	"testing"

	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/domain/domain_util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestSong(artist string, year int, genres []string, vector []float64) *catalog_models.Song {
	return &catalog_models.Song{
		ID:          primitive.NewObjectID(),
		Title:       "test song",
		Artist:      artist,
		Year:        year,
		Genres:      genres,
		MusicVector: vector,
	}
}

func TestApplyChoice(t *testing.T) {
	t.Run("计数器与累计向量同时更新", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		song := newTestSong("Artist A", 1999, []string{"rock", "indie"}, []float64{1, 2, 3})

		require.NoError(t, ApplyChoice(&profile, song))

		assert.Equal(t, 1, profile.PreferredGenres["rock"])
		assert.Equal(t, 1, profile.PreferredGenres["indie"])
		assert.Equal(t, 1, profile.PreferredArtists["Artist A"])
		assert.Equal(t, 1, profile.PreferredYears["1999"])
		assert.Equal(t, 1, profile.TotalSelections)
		assert.Equal(t, []float64{1, 2, 3}, profile.CumulativeVector)
	})

	t.Run("多次选择累加", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		require.NoError(t, ApplyChoice(&profile, newTestSong("Artist A", 1999, []string{"rock"}, []float64{1, 0, 0})))
		require.NoError(t, ApplyChoice(&profile, newTestSong("Artist A", 2005, []string{"rock"}, []float64{0, 1, 0})))

		assert.Equal(t, 2, profile.PreferredGenres["rock"])
		assert.Equal(t, 2, profile.PreferredArtists["Artist A"])
		assert.Equal(t, 2, profile.TotalSelections)
		assert.Equal(t, []float64{1, 1, 0}, profile.CumulativeVector)
	})

	t.Run("缺少向量时只更新计数器", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		require.NoError(t, ApplyChoice(&profile, newTestSong("Artist B", 2010, []string{"jazz"}, nil)))

		assert.Equal(t, 1, profile.PreferredGenres["jazz"])
		assert.Equal(t, 1, profile.TotalSelections)
		assert.Empty(t, profile.CumulativeVector)
	})

	t.Run("维度不一致返回错误", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		require.NoError(t, ApplyChoice(&profile, newTestSong("Artist A", 1999, nil, []float64{1, 2, 3})))

		err := ApplyChoice(&profile, newTestSong("Artist A", 1999, nil, []float64{1, 2}))
		assert.ErrorIs(t, err, domain_util.ErrDimensionMismatch)
	})

	t.Run("空字段不产生计数", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		require.NoError(t, ApplyChoice(&profile, newTestSong("", 0, []string{""}, nil)))

		assert.Empty(t, profile.PreferredGenres)
		assert.Empty(t, profile.PreferredArtists)
		assert.Empty(t, profile.PreferredYears)
		assert.Equal(t, 1, profile.TotalSelections)
	})

	t.Run("nil参数返回错误", func(t *testing.T) {
		profile := taste_models.NewTasteProfile()
		assert.Error(t, ApplyChoice(nil, newTestSong("a", 1, nil, nil)))
		assert.Error(t, ApplyChoice(&profile, nil))
	})
}
