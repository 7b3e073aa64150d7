package scene_taste_usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_interface"
	"github.com/soundsage/backend/domain/domain_util"
)

// ChoicePredictorUsecase 基于听众累计向量预测二选一结果
type ChoicePredictorUsecase struct {
	vectors taste_interface.SongVectorLookup
	timeout time.Duration
}

func NewChoicePredictorUsecase(vectors taste_interface.SongVectorLookup, timeout time.Duration) *ChoicePredictorUsecase {
	return &ChoicePredictorUsecase{
		vectors: vectors,
		timeout: timeout,
	}
}

// Predict 返回听众更可能选择的歌曲ID
// 相似度持平时返回第一首，保证结果确定可复现
func (cp *ChoicePredictorUsecase) Predict(ctx context.Context, songAID, songBID string, listenerVector []float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cp.timeout)
	defer cancel()

	if songAID == "" || songBID == "" {
		return "", fmt.Errorf("predict choice: empty song id")
	}

	vectorA, err := cp.vectors.GetSongVector(ctx, songAID)
	if err != nil {
		return "", fmt.Errorf("predict choice for song %s: %w", songAID, err)
	}
	vectorB, err := cp.vectors.GetSongVector(ctx, songBID)
	if err != nil {
		return "", fmt.Errorf("predict choice for song %s: %w", songBID, err)
	}

	// 冷启动：还没有任何选择时累计向量为空，按零向量处理
	// 两边相似度都为0，走持平分支
	if len(listenerVector) == 0 {
		listenerVector = domain_util.Zeros(len(vectorA))
	}

	scoreA, err := domain_util.CosineSimilarity(listenerVector, vectorA)
	if err != nil {
		return "", fmt.Errorf("predict choice for song %s: %w", songAID, err)
	}
	scoreB, err := domain_util.CosineSimilarity(listenerVector, vectorB)
	if err != nil {
		return "", fmt.Errorf("predict choice for song %s: %w", songBID, err)
	}

	if scoreB > scoreA {
		return songBID, nil
	}
	return songAID, nil
}
