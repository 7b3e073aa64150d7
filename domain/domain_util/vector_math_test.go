package domain_util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float64{0.3, -1.2, 4.5, 0.01}
	sim, err := CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-4, 0.5, 2}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)
}

func TestCosineSimilarityOpposite(t *testing.T) {
	sim, err := CosineSimilarity([]float64{2, 1}, []float64{-2, -1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosineSimilarityZeroMagnitude(t *testing.T) {
	// 零向量方向未定义，约定返回0而不是NaN
	sim, err := CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = CosineSimilarity([]float64{1, 2, 3}, []float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestAdd(t *testing.T) {
	out, err := Add([]float64{1, 2, 3}, []float64{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 4}, out)
}

func TestAddDoesNotMutateInputs(t *testing.T) {
	a := []float64{1, 1}
	b := []float64{2, 2}
	_, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, a)
	assert.Equal(t, []float64{2, 2}, b)
}

func TestAddDimensionMismatch(t *testing.T) {
	_, err := Add([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAverage(t *testing.T) {
	out, err := Average([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, out)
}

func TestAverageEmptyInput(t *testing.T) {
	_, err := Average(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAverageRaggedInput(t *testing.T) {
	_, err := Average([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestZeros(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, Zeros(3))
	assert.Empty(t, Zeros(0))
}
