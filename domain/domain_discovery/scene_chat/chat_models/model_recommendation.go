package chat_models

import (
	"errors"

	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
)

// ErrNoMatch 过滤后没有剩余候选，属于正常业务结果而非故障
var ErrNoMatch = errors.New("no matching recommendation")

// RecommendationFilter 候选筛选约束，零值字段不生效
type RecommendationFilter struct {
	Language string `json:"language,omitempty"` // 精确匹配
	YearMin  int    `json:"year_min,omitempty"` // 闭区间
	YearMax  int    `json:"year_max,omitempty"`
}

// Recommendation 一次相似推荐的结果
// BestMatch 取检索排序的首位，Varied 在剩余候选中均匀随机取一首
type Recommendation struct {
	SourceID  string                       `json:"source_id"`
	BestMatch catalog_models.SongCandidate `json:"best_match"`
	Varied    catalog_models.SongCandidate `json:"varied"`
	Pool      int                          `json:"pool"` // 过滤后候选数
}

// PersonalitySummary 画像解读：最接近的情绪/流派标签及情绪变化分类
type PersonalitySummary struct {
	ClosestMoods  []string                      `json:"closest_moods"`
	ClosestGenres []string                      `json:"closest_genres"`
	MoodShift     *taste_models.MoodShiftReport `json:"mood_shift,omitempty"`
}
