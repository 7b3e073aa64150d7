package game_models

import (
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
)

// SongPair 一轮呈现给听众的两首候选歌曲
// PredictedID 为模型预测听众会选择的歌曲，预测失败时为空串，不影响对局
type SongPair struct {
	SongA *catalog_models.Song `json:"song_a"`
	SongB *catalog_models.Song `json:"song_b"`

	PredictedID string `json:"predicted_id,omitempty"`
}

// RoundResult 一轮选择落库后的结果
type RoundResult struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`

	// FinalMood 场次结束时的加权最终情绪向量，未结束为nil
	FinalMood []float64 `json:"final_mood,omitempty"`
}
