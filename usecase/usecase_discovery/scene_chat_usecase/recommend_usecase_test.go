package scene_chat_usecase

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_chat/chat_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSongRepo struct {
	songs     map[string]*catalog_models.Song
	moodAlike []*catalog_models.Song
}

func (f *fakeSongRepo) GetByID(_ context.Context, songID string) (*catalog_models.Song, error) {
	song, ok := f.songs[songID]
	if !ok {
		return nil, catalog_interface.ErrSongNotFound
	}
	return song, nil
}

func (f *fakeSongRepo) GetByTitleArtist(_ context.Context, _, _ string) (*catalog_models.Song, error) {
	return nil, catalog_interface.ErrSongNotFound
}

func (f *fakeSongRepo) Search(_ context.Context, _ string, _ domain.SortOrder, _, _ int64) ([]*catalog_models.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) Count(_ context.Context, _ interface{}) (int64, error) { return 0, nil }

func (f *fakeSongRepo) SampleUnseen(_ context.Context, _ []string, _ string, _ float64, _ int) ([]*catalog_models.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) GetMoodAlike(_ context.Context, _ []string, _ string, _ int) ([]*catalog_models.Song, error) {
	return f.moodAlike, nil
}

func (f *fakeSongRepo) TopPicked(_ context.Context, _ string, _ int) ([]*catalog_models.Song, error) {
	return nil, nil
}

func (f *fakeSongRepo) IncrementPickCount(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeSongRepo) UpsertByPath(_ context.Context, _ *catalog_models.Song) error { return nil }

type fakeVectorSearch struct {
	candidates []catalog_models.SongCandidate
	calls      int
}

func (f *fakeVectorSearch) SimilarByMusicVector(_ context.Context, _ []float64, _, _ int) ([]catalog_models.SongCandidate, error) {
	f.calls++
	return f.candidates, nil
}

func (f *fakeVectorSearch) SimilarByLyricsVector(_ context.Context, _ []float64, _, _ int) ([]catalog_models.SongCandidate, error) {
	f.calls++
	return f.candidates, nil
}

type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{data: make(map[string][]byte)} }

func (f *fakeStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeStore) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func candidate(id, language string, year int, score float64) catalog_models.SongCandidate {
	return catalog_models.SongCandidate{ID: id, Title: id, Language: language, Year: year, Score: score}
}

func TestFilterCandidates(t *testing.T) {
	candidates := []catalog_models.SongCandidate{
		candidate("source", "English", 2000, 0.99),
		candidate("a", "English", 1995, 0.9),
		candidate("b", "Spanish", 2005, 0.8),
		candidate("c", "English", 2010, 0.7),
	}

	t.Run("排除来源歌曲", func(t *testing.T) {
		out := FilterCandidates(candidates, "source", chat_models.RecommendationFilter{})
		require.Len(t, out, 3)
		for _, c := range out {
			assert.NotEqual(t, "source", c.ID)
		}
	})

	t.Run("语言精确匹配", func(t *testing.T) {
		out := FilterCandidates(candidates, "source", chat_models.RecommendationFilter{Language: "Spanish"})
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("年份闭区间", func(t *testing.T) {
		out := FilterCandidates(candidates, "source", chat_models.RecommendationFilter{YearMin: 2000, YearMax: 2005})
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("零值条件不生效", func(t *testing.T) {
		out := FilterCandidates(candidates, "", chat_models.RecommendationFilter{})
		assert.Len(t, out, 4)
	})

	t.Run("保持原有排序", func(t *testing.T) {
		out := FilterCandidates(candidates, "source", chat_models.RecommendationFilter{Language: "English"})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "c", out[1].ID)
	})
}

func TestPickRecommendation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("首选取过滤后第一条", func(t *testing.T) {
		candidates := []catalog_models.SongCandidate{
			candidate("a", "English", 1995, 0.9),
			candidate("b", "English", 2005, 0.8),
		}
		rec, err := PickRecommendation(candidates, "source", chat_models.RecommendationFilter{}, rng)
		require.NoError(t, err)
		assert.Equal(t, "a", rec.BestMatch.ID)
		assert.Equal(t, 2, rec.Pool)
		assert.Contains(t, []string{"a", "b"}, rec.Varied.ID)
	})

	t.Run("候选耗尽返回ErrNoMatch", func(t *testing.T) {
		candidates := []catalog_models.SongCandidate{candidate("source", "English", 2000, 0.9)}
		_, err := PickRecommendation(candidates, "source", chat_models.RecommendationFilter{}, rng)
		assert.ErrorIs(t, err, chat_models.ErrNoMatch)
	})

	t.Run("只剩一条时替补等于首选", func(t *testing.T) {
		candidates := []catalog_models.SongCandidate{candidate("a", "English", 1995, 0.9)}
		rec, err := PickRecommendation(candidates, "source", chat_models.RecommendationFilter{}, rng)
		require.NoError(t, err)
		assert.Equal(t, rec.BestMatch.ID, rec.Varied.ID)
	})
}

func TestSimilarFlows(t *testing.T) {
	sourceID := primitive.NewObjectID().Hex()
	source := &catalog_models.Song{
		Title:        "source song",
		MusicVector:  []float64{1, 0, 0},
		LyricsVector: []float64{0, 1, 0},
		SongMood:     []string{"Happy"},
	}

	setup := func() (*RecommendUsecase, *fakeVectorSearch, *fakeStore) {
		songs := &fakeSongRepo{songs: map[string]*catalog_models.Song{sourceID: source}}
		search := &fakeVectorSearch{candidates: []catalog_models.SongCandidate{
			candidate("a", "English", 1995, 0.9),
			candidate("b", "English", 2005, 0.8),
		}}
		store := newFakeStore()
		uc := NewRecommendUsecase(songs, search, store, 2*time.Second, 100, 10, rand.New(rand.NewSource(1)))
		return uc, search, store
	}

	t.Run("音乐相似推荐并写缓存", func(t *testing.T) {
		uc, search, _ := setup()

		rec, err := uc.MusicallySimilar(context.Background(), sourceID, chat_models.RecommendationFilter{}, false)
		require.NoError(t, err)
		assert.Equal(t, "a", rec.BestMatch.ID)
		assert.Equal(t, 1, search.calls)

		// 第二次命中缓存，不再走检索
		again, err := uc.MusicallySimilar(context.Background(), sourceID, chat_models.RecommendationFilter{}, false)
		require.NoError(t, err)
		assert.Equal(t, rec.BestMatch.ID, again.BestMatch.ID)
		assert.Equal(t, 1, search.calls)
	})

	t.Run("refresh跳过缓存", func(t *testing.T) {
		uc, search, _ := setup()

		_, err := uc.MusicallySimilar(context.Background(), sourceID, chat_models.RecommendationFilter{}, false)
		require.NoError(t, err)
		_, err = uc.MusicallySimilar(context.Background(), sourceID, chat_models.RecommendationFilter{}, true)
		require.NoError(t, err)
		assert.Equal(t, 2, search.calls)
	})

	t.Run("歌词相似走歌词向量", func(t *testing.T) {
		uc, _, _ := setup()
		rec, err := uc.LyricallySimilar(context.Background(), sourceID, chat_models.RecommendationFilter{}, false)
		require.NoError(t, err)
		assert.Equal(t, "a", rec.BestMatch.ID)
	})

	t.Run("缺少向量返回ErrNoMatch", func(t *testing.T) {
		noVectorID := primitive.NewObjectID().Hex()
		songs := &fakeSongRepo{songs: map[string]*catalog_models.Song{noVectorID: {Title: "no vector"}}}
		uc := NewRecommendUsecase(songs, &fakeVectorSearch{}, newFakeStore(), 2*time.Second, 100, 10, rand.New(rand.NewSource(1)))

		_, err := uc.MusicallySimilar(context.Background(), noVectorID, chat_models.RecommendationFilter{}, false)
		assert.ErrorIs(t, err, chat_models.ErrNoMatch)
	})

	t.Run("歌曲不存在时错误可识别", func(t *testing.T) {
		uc, _, _ := setup()
		_, err := uc.MusicallySimilar(context.Background(), "missing", chat_models.RecommendationFilter{}, false)
		assert.ErrorIs(t, err, catalog_interface.ErrSongNotFound)
	})

	t.Run("情绪相似推荐", func(t *testing.T) {
		songs := &fakeSongRepo{
			songs:     map[string]*catalog_models.Song{sourceID: source},
			moodAlike: []*catalog_models.Song{{Title: "alike"}},
		}
		uc := NewRecommendUsecase(songs, &fakeVectorSearch{}, newFakeStore(), 2*time.Second, 100, 10, rand.New(rand.NewSource(1)))

		alike, err := uc.MoodAlikeSongs(context.Background(), sourceID, 5)
		require.NoError(t, err)
		require.Len(t, alike, 1)
		assert.Equal(t, "alike", alike[0].Title)
	})

	t.Run("无情绪标签返回ErrNoMatch", func(t *testing.T) {
		plainID := primitive.NewObjectID().Hex()
		songs := &fakeSongRepo{songs: map[string]*catalog_models.Song{plainID: {Title: "plain"}}}
		uc := NewRecommendUsecase(songs, &fakeVectorSearch{}, newFakeStore(), 2*time.Second, 100, 10, rand.New(rand.NewSource(1)))

		_, err := uc.MoodAlikeSongs(context.Background(), plainID, 5)
		assert.ErrorIs(t, err, chat_models.ErrNoMatch)
	})
}
