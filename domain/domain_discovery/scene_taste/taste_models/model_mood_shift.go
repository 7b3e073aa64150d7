package taste_models

// MoodShift 两个情绪向量之间变化的定性分类
type MoodShift string

const (
	MoodShiftStable   MoodShift = "stable"
	MoodShiftPositive MoodShift = "significant_positive_shift"
	MoodShiftNegative MoodShift = "significant_negative_shift"
	MoodShiftMixed    MoodShift = "mixed_shift"
)

// MoodShiftReport 分类结果及其数值依据
type MoodShiftReport struct {
	Shift MoodShift `json:"shift"`

	// Magnitude 向量差的欧氏范数，Direction 逐维差值之和
	Magnitude float64 `json:"magnitude"`
	Direction float64 `json:"direction"`
}
