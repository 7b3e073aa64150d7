package scene_taste_usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_models"
	"github.com/soundsage/backend/domain/domain_util"
)

// ClosestLabels 在参考向量表中找出与查询向量余弦最接近的k个标签
// 维度不一致的表项直接跳过，表由运维维护，个别脏数据不应拖垮解读
func ClosestLabels(vector []float64, table map[string][]float64, k int) []string {
	if len(vector) == 0 || len(table) == 0 || k <= 0 {
		return nil
	}

	// map遍历无序，先按标签名排序保证同分时结果稳定
	labels := make([]string, 0, len(table))
	for label := range table {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	scored := make([]domain_util.ScoredLabel, 0, len(labels))
	for _, label := range labels {
		score, err := domain_util.CosineSimilarity(vector, table[label])
		if err != nil {
			continue
		}
		scored = append(scored, domain_util.ScoredLabel{Label: label, Score: score})
	}

	top := domain_util.TopKByScore(scored, k)
	out := make([]string, 0, len(top))
	for _, item := range top {
		out = append(out, item.Label)
	}
	return out
}

// PersonalityUsecase 把听众的数值画像翻译成可读的标签解读
type PersonalityUsecase struct {
	vectorTable domain.ConfigRepository[taste_models.VectorTable]
	timeout     time.Duration
}

func NewPersonalityUsecase(vectorTable domain.ConfigRepository[taste_models.VectorTable], timeout time.Duration) *PersonalityUsecase {
	return &PersonalityUsecase{
		vectorTable: vectorTable,
		timeout:     timeout,
	}
}

// Interpret 给出与情绪向量、累计口味向量各自最接近的k个标签
func (pu *PersonalityUsecase) Interpret(ctx context.Context, moodVector, cumulativeVector []float64, k int) (closestMoods, closestGenres []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, pu.timeout)
	defer cancel()

	table, err := pu.vectorTable.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("interpret personality: %w", err)
	}

	closestMoods = ClosestLabels(moodVector, table.Moods, k)
	closestGenres = ClosestLabels(cumulativeVector, table.Genres, k)
	return closestMoods, closestGenres, nil
}
