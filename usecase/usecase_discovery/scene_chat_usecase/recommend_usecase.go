package scene_chat_usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/soundsage/backend/cache"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/domain/domain_discovery/scene_chat/chat_models"
)

// recommendCacheTTL 推荐结果缓存时长
// 检索索引离线重建，一小时内同一首歌的候选基本不变
const recommendCacheTTL = time.Hour

// FilterCandidates 按来源排除与筛选条件过滤候选，保持原有排序
// 语言精确匹配，年份按闭区间，零值条件不生效
func FilterCandidates(candidates []catalog_models.SongCandidate, sourceID string, filter chat_models.RecommendationFilter) []catalog_models.SongCandidate {
	out := make([]catalog_models.SongCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == sourceID {
			continue
		}
		if filter.Language != "" && c.Language != filter.Language {
			continue
		}
		if filter.YearMin > 0 && c.Year < filter.YearMin {
			continue
		}
		if filter.YearMax > 0 && c.Year > filter.YearMax {
			continue
		}
		out = append(out, c)
	}
	return out
}

// PickRecommendation 在过滤后的候选中选出首选与随机替补
// 候选已按相关度降序，首选取第一条；替补均匀随机，给听众一点探索空间
func PickRecommendation(candidates []catalog_models.SongCandidate, sourceID string, filter chat_models.RecommendationFilter, rng *rand.Rand) (*chat_models.Recommendation, error) {
	survivors := FilterCandidates(candidates, sourceID, filter)
	if len(survivors) == 0 {
		return nil, chat_models.ErrNoMatch
	}

	return &chat_models.Recommendation{
		SourceID:  sourceID,
		BestMatch: survivors[0],
		Varied:    survivors[rng.Intn(len(survivors))],
		Pool:      len(survivors),
	}, nil
}

// RecommendUsecase 相似歌曲推荐：向量近邻检索 + 过滤选取 + 结果缓存
type RecommendUsecase struct {
	songs   catalog_interface.SongRepository
	search  catalog_interface.VectorSearchRepository
	store   cache.Store
	timeout time.Duration

	// numCandidates 近邻检索的召回规模，留出被过滤掉的余量
	numCandidates int
	limit         int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRecommendUsecase(
	songs catalog_interface.SongRepository,
	search catalog_interface.VectorSearchRepository,
	store cache.Store,
	timeout time.Duration,
	numCandidates, limit int,
	rng *rand.Rand,
) *RecommendUsecase {
	return &RecommendUsecase{
		songs:         songs,
		search:        search,
		store:         store,
		timeout:       timeout,
		numCandidates: numCandidates,
		limit:         limit,
		rng:           rng,
	}
}

// MusicallySimilar 按音乐向量找相似歌曲
// refresh为true时跳过缓存读取并回写新结果
func (ru *RecommendUsecase) MusicallySimilar(ctx context.Context, songID string, filter chat_models.RecommendationFilter, refresh bool) (*chat_models.Recommendation, error) {
	return ru.similar(ctx, songID, filter, refresh, "music")
}

// LyricallySimilar 按歌词向量找相似歌曲
func (ru *RecommendUsecase) LyricallySimilar(ctx context.Context, songID string, filter chat_models.RecommendationFilter, refresh bool) (*chat_models.Recommendation, error) {
	return ru.similar(ctx, songID, filter, refresh, "lyrics")
}

func (ru *RecommendUsecase) similar(ctx context.Context, songID string, filter chat_models.RecommendationFilter, refresh bool, kind string) (*chat_models.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.timeout)
	defer cancel()

	key := fmt.Sprintf("recommend:%s:%s:%s:%d:%d", kind, songID, filter.Language, filter.YearMin, filter.YearMax)
	if !refresh {
		var cached chat_models.Recommendation
		hit, err := ru.store.GetJSON(ctx, key, &cached)
		if err != nil {
			// 缓存故障退化为直连检索
			logrus.WithField("key", key).WithError(err).Warn("读取推荐缓存失败")
		}
		if hit {
			return &cached, nil
		}
	}

	song, err := ru.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("similar songs for %s: %w", songID, err)
	}

	queryVector := song.MusicVector
	if kind == "lyrics" {
		queryVector = song.LyricsVector
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("similar songs for %s: %w", songID, chat_models.ErrNoMatch)
	}

	var candidates []catalog_models.SongCandidate
	if kind == "lyrics" {
		candidates, err = ru.search.SimilarByLyricsVector(ctx, queryVector, ru.numCandidates, ru.limit)
	} else {
		candidates, err = ru.search.SimilarByMusicVector(ctx, queryVector, ru.numCandidates, ru.limit)
	}
	if err != nil {
		return nil, fmt.Errorf("similar songs for %s: %w", songID, err)
	}

	ru.mu.Lock()
	recommendation, err := PickRecommendation(candidates, songID, filter, ru.rng)
	ru.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("similar songs for %s: %w", songID, err)
	}

	if err := ru.store.SetJSON(ctx, key, recommendation, recommendCacheTTL); err != nil {
		logrus.WithField("key", key).WithError(err).Warn("写入推荐缓存失败")
	}

	return recommendation, nil
}

// ResolveSongID 把标题+歌手解析成歌曲ID，已有ID时原样返回
func (ru *RecommendUsecase) ResolveSongID(ctx context.Context, songID, title, artist string) (string, error) {
	if songID != "" {
		return songID, nil
	}

	ctx, cancel := context.WithTimeout(ctx, ru.timeout)
	defer cancel()

	song, err := ru.songs.GetByTitleArtist(ctx, title, artist)
	if err != nil {
		return "", fmt.Errorf("resolve song %q by %q: %w", title, artist, err)
	}
	return song.ID.Hex(), nil
}

// MoodAlikeSongs 按情绪标签重叠推荐
// 源歌曲没有情绪标签时视为无匹配
func (ru *RecommendUsecase) MoodAlikeSongs(ctx context.Context, songID string, limit int) ([]*catalog_models.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.timeout)
	defer cancel()

	song, err := ru.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("mood alike songs for %s: %w", songID, err)
	}
	if len(song.SongMood) == 0 {
		return nil, fmt.Errorf("mood alike songs for %s: %w", songID, chat_models.ErrNoMatch)
	}

	alike, err := ru.songs.GetMoodAlike(ctx, song.SongMood, songID, limit)
	if err != nil {
		return nil, fmt.Errorf("mood alike songs for %s: %w", songID, err)
	}
	if len(alike) == 0 {
		return nil, fmt.Errorf("mood alike songs for %s: %w", songID, chat_models.ErrNoMatch)
	}
	return alike, nil
}
