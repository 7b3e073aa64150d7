package scene_taste_usecase

import (
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/domain/domain_util"
)

// MoodDimension 情绪向量维度，与moodVectors表一致
const MoodDimension = 3

// moodVectors 情绪标签到向量的固定映射，进程级只读
// 未知标签统一落到零向量：单轮出现陌生标签不值得让整局失败
var moodVectors = map[string][]float64{
	"Happy":        {0.6, 0.7, 0.4},
	"Energetic":    {0.8, 0.2, -0.3},
	"Melancholy":   {-0.4, -0.7, 0.5},
	"Anxious":      {0.5, -0.7, 0.3},
	"Dark":         {0.6, -0.8, 0.2},
	"Calm":         {0.1, 0.6, -0.4},
	"Uplifting":    {0.8, 0.6, 0.5},
	"Optimistic":   {0.7, 0.8, 0.6},
	"Reflective":   {-0.3, -0.6, 0.4},
	"Nervous":      {0.4, -0.6, 0.1},
	"Playful":      {0.7, 0.5, -0.3},
	"Excited":      {0.9, 0.4, -0.2},
	"Curious":      {0.8, 0.5, -0.1},
	"Tender":       {0.5, 0.7, 0.4},
	"Romantic":     {0.5, 0.7, 0.2},
	"Intense":      {0.7, 0.3, -0.2},
	"Somber":       {-0.2, -0.8, 0.5},
	"Bittersweet":  {-0.3, -0.5, 0.6},
	"Warm":         {0.6, 0.6, 0.3},
	"Discontent":   {-0.5, -0.6, 0.3},
	"Cynical":      {-0.6, -0.5, 0.2},
	"Affectionate": {0.4, 0.8, 0.3},
	"Comforting":   {0.3, 0.5, 0.6},
	"Steady":       {0.3, 0.6, 0.5},
	"Yearning":     {0.4, 0.7, 0.4},
	"Fiery":        {0.9, 0.4, -0.1},
	"Reassuring":   {0.4, 0.5, 0.7},
	"Unpleasant":   {-0.7, -0.4, 0.1},
}

// VectorFor 返回标签对应向量的拷贝，未知标签返回零向量
func VectorFor(label string) []float64 {
	v, ok := moodVectors[label]
	if !ok {
		return domain_util.Zeros(MoodDimension)
	}
	out := make([]float64, MoodDimension)
	copy(out, v)
	return out
}

// AggregateMoods 一组标签的平均向量，空输入返回零向量
// 某一轮没有情绪数据是正常情况，不报错
func AggregateMoods(labels []string) []float64 {
	if len(labels) == 0 {
		return domain_util.Zeros(MoodDimension)
	}

	sum := domain_util.Zeros(MoodDimension)
	for _, label := range labels {
		v := VectorFor(label)
		for i := range sum {
			sum[i] += v[i]
		}
	}

	return domain_util.Scale(sum, 1/float64(len(labels)))
}

// WeightedFinalMood 整场的加权最终情绪向量
// 第i条（1起）权重为i：越往后的轮次选择越有据可依，权重越大
// 空历史返回零向量
func WeightedFinalMood(history []taste_models.RoundMoodEntry) []float64 {
	if len(history) == 0 {
		return domain_util.Zeros(MoodDimension)
	}

	weighted := domain_util.Zeros(MoodDimension)
	var totalWeight float64

	for idx, entry := range history {
		weight := float64(idx + 1)
		totalWeight += weight

		roundVector := AggregateMoods(entry.Mood)
		for i := range weighted {
			weighted[i] += roundVector[i] * weight
		}
	}

	return domain_util.Scale(weighted, 1/totalWeight)
}

// RollingMoodVector 单轮完成后的滑动平均更新
// previous按rounds-1轮的均值处理，current并入后得到rounds轮的均值
func RollingMoodVector(previous []float64, current []float64, rounds int) []float64 {
	if rounds <= 0 {
		return domain_util.Zeros(MoodDimension)
	}
	if len(previous) == 0 {
		previous = domain_util.Zeros(MoodDimension)
	}

	out := make([]float64, MoodDimension)
	for i := range out {
		out[i] = (previous[i]*float64(rounds-1) + current[i]) / float64(rounds)
	}
	return out
}
