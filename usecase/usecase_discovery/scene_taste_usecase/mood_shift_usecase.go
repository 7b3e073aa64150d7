package scene_taste_usecase

import (
	"fmt"
	"math"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
)

// shiftMagnitudeThreshold 欧氏距离不超过该值视为情绪平稳
const shiftMagnitudeThreshold = 0.35

// DetectShift 比较两个情绪向量，给出变化幅度与方向分类
// magnitude为差向量的欧氏范数，direction为各维差值之和
func DetectShift(previous, current []float64) (taste_models.MoodShiftReport, error) {
	if len(previous) != len(current) {
		return taste_models.MoodShiftReport{}, fmt.Errorf("detect mood shift: dimension %d vs %d", len(previous), len(current))
	}

	var sumSquares, direction float64
	for i := range previous {
		delta := current[i] - previous[i]
		sumSquares += delta * delta
		direction += delta
	}
	magnitude := math.Sqrt(sumSquares)

	report := taste_models.MoodShiftReport{
		Magnitude: magnitude,
		Direction: direction,
	}

	switch {
	case magnitude <= shiftMagnitudeThreshold:
		report.Shift = taste_models.MoodShiftStable
	case direction > 0:
		report.Shift = taste_models.MoodShiftPositive
	case direction < 0:
		report.Shift = taste_models.MoodShiftNegative
	default:
		report.Shift = taste_models.MoodShiftMixed
	}

	return report, nil
}
