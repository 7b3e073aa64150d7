package scene_taste_usecase

import (
	"context"
	"testing"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVectorTableRepo struct {
	table *taste_models.VectorTable
	err   error
}

func (f *fakeVectorTableRepo) Get(_ context.Context) (*taste_models.VectorTable, error) {
	return f.table, f.err
}

func (f *fakeVectorTableRepo) Update(_ context.Context, _ *taste_models.VectorTable) error {
	return nil
}

func (f *fakeVectorTableRepo) GetAll(_ context.Context) ([]*taste_models.VectorTable, error) {
	return []*taste_models.VectorTable{f.table}, f.err
}

func (f *fakeVectorTableRepo) ReplaceAll(_ context.Context, _ []*taste_models.VectorTable) error {
	return nil
}

func TestClosestLabels(t *testing.T) {
	table := map[string][]float64{
		"axis-x": {1, 0, 0},
		"axis-y": {0, 1, 0},
		"axis-z": {0, 0, 1},
	}

	t.Run("按余弦相似度从高到低返回k个标签", func(t *testing.T) {
		got := ClosestLabels([]float64{0.9, 0.3, 0.1}, table, 2)
		assert.Equal(t, []string{"axis-x", "axis-y"}, got)
	})

	t.Run("k大于表项数时返回全部", func(t *testing.T) {
		got := ClosestLabels([]float64{0.9, 0.3, 0.1}, table, 10)
		assert.Len(t, got, 3)
	})

	t.Run("维度不一致的表项被跳过", func(t *testing.T) {
		dirty := map[string][]float64{
			"good": {1, 0, 0},
			"bad":  {1, 0},
		}
		got := ClosestLabels([]float64{1, 0, 0}, dirty, 5)
		assert.Equal(t, []string{"good"}, got)
	})

	t.Run("空输入返回nil", func(t *testing.T) {
		assert.Nil(t, ClosestLabels(nil, table, 2))
		assert.Nil(t, ClosestLabels([]float64{1, 0, 0}, nil, 2))
		assert.Nil(t, ClosestLabels([]float64{1, 0, 0}, table, 0))
	})
}

func TestPersonalityInterpret(t *testing.T) {
	repo := &fakeVectorTableRepo{table: &taste_models.VectorTable{
		Moods: map[string][]float64{
			"Happy":      {0.6, 0.7, 0.4},
			"Melancholy": {-0.4, -0.7, 0.5},
		},
		Genres: map[string][]float64{
			"rock": {1, 0},
			"jazz": {0, 1},
		},
	}}
	usecase := NewPersonalityUsecase(repo, 2*time.Second)

	moods, genres, err := usecase.Interpret(context.Background(), []float64{0.5, 0.6, 0.3}, []float64{0.9, 0.1}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Happy"}, moods)
	assert.Equal(t, []string{"rock"}, genres)
}
