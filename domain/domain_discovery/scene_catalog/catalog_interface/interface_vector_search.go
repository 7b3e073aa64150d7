package catalog_interface

import (
	"context"

	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
)

// VectorSearchRepository 外部近邻检索的消费端契约
// 检索索引本身由外部维护，这里只发起查询并消费排好序的候选列表
type VectorSearchRepository interface {
	SimilarByMusicVector(ctx context.Context, queryVector []float64, numCandidates, limit int) ([]catalog_models.SongCandidate, error)
	SimilarByLyricsVector(ctx context.Context, queryVector []float64, numCandidates, limit int) ([]catalog_models.SongCandidate, error)
}
