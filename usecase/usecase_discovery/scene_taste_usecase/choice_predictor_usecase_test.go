package scene_taste_usecase

import (
	"context"
	"testing"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_interface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVectorLookup struct {
	vectors map[string][]float64
}

func (f *fakeVectorLookup) GetSongVector(_ context.Context, songID string) ([]float64, error) {
	v, ok := f.vectors[songID]
	if !ok {
		return nil, taste_interface.ErrSongVectorNotFound
	}
	return v, nil
}

func TestChoicePredictor(t *testing.T) {
	lookup := &fakeVectorLookup{vectors: map[string][]float64{
		"song-a": {1, 0, 0},
		"song-b": {0, 1, 0},
		"song-c": {0, 1, 0},
	}}
	predictor := NewChoicePredictorUsecase(lookup, 2*time.Second)

	t.Run("选择与听众向量更相似的歌曲", func(t *testing.T) {
		got, err := predictor.Predict(context.Background(), "song-a", "song-b", []float64{0.9, 0.1, 0})
		require.NoError(t, err)
		assert.Equal(t, "song-a", got)

		got, err = predictor.Predict(context.Background(), "song-a", "song-b", []float64{0.1, 0.9, 0})
		require.NoError(t, err)
		assert.Equal(t, "song-b", got)
	})

	t.Run("相似度持平返回第一首", func(t *testing.T) {
		got, err := predictor.Predict(context.Background(), "song-b", "song-c", []float64{1, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, "song-b", got)
	})

	t.Run("听众向量为零时两首都是0分，返回第一首", func(t *testing.T) {
		got, err := predictor.Predict(context.Background(), "song-a", "song-b", nil)
		require.NoError(t, err)
		assert.Equal(t, "song-a", got)
	})

	t.Run("歌曲向量缺失时错误可识别", func(t *testing.T) {
		_, err := predictor.Predict(context.Background(), "song-a", "song-x", []float64{1, 0, 0})
		assert.ErrorIs(t, err, taste_interface.ErrSongVectorNotFound)
	})

	t.Run("空ID返回错误", func(t *testing.T) {
		_, err := predictor.Predict(context.Background(), "", "song-b", nil)
		assert.Error(t, err)
	})
}
