package scene_taste_usecase

import (
	"testing"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectShift(t *testing.T) {
	t.Run("小幅变化判定为平稳", func(t *testing.T) {
		report, err := DetectShift([]float64{0.1, 0.2, 0.3}, []float64{0.2, 0.2, 0.3})
		require.NoError(t, err)
		assert.Equal(t, taste_models.MoodShiftStable, report.Shift)
		assert.InDelta(t, 0.1, report.Magnitude, 1e-9)
	})

	t.Run("完全相同判定为平稳", func(t *testing.T) {
		report, err := DetectShift([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5})
		require.NoError(t, err)
		assert.Equal(t, taste_models.MoodShiftStable, report.Shift)
		assert.Zero(t, report.Magnitude)
	})

	t.Run("大幅上行判定为正向转变", func(t *testing.T) {
		report, err := DetectShift([]float64{0, 0, 0}, []float64{0.5, 0.5, 0.5})
		require.NoError(t, err)
		assert.Equal(t, taste_models.MoodShiftPositive, report.Shift)
		assert.InDelta(t, 1.5, report.Direction, 1e-9)
	})

	t.Run("大幅下行判定为负向转变", func(t *testing.T) {
		report, err := DetectShift([]float64{0.5, 0.5, 0.5}, []float64{0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, taste_models.MoodShiftNegative, report.Shift)
		assert.InDelta(t, -1.5, report.Direction, 1e-9)
	})

	t.Run("大幅变化但方向抵消判定为混合", func(t *testing.T) {
		report, err := DetectShift([]float64{0.5, -0.5, 0}, []float64{-0.5, 0.5, 0})
		require.NoError(t, err)
		assert.Equal(t, taste_models.MoodShiftMixed, report.Shift)
		assert.Zero(t, report.Direction)
	})

	t.Run("维度不一致返回错误", func(t *testing.T) {
		_, err := DetectShift([]float64{0.1}, []float64{0.1, 0.2})
		assert.Error(t, err)
	})
}
