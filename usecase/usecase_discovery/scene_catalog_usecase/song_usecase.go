package scene_catalog_usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SongUsecase 曲库浏览与检索
type SongUsecase struct {
	songs   catalog_interface.SongRepository
	timeout time.Duration
}

func NewSongUsecase(songs catalog_interface.SongRepository, timeout time.Duration) *SongUsecase {
	return &SongUsecase{
		songs:   songs,
		timeout: timeout,
	}
}

// foldKeyword 搜索词归一化：去音调符号后转小写
// 让 Beyoncé 与 beyonce 能互相命中
func foldKeyword(keyword string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, keyword)
	if err != nil {
		folded = keyword
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Browse 关键词检索曲库，空关键词按浏览处理
func (su *SongUsecase) Browse(ctx context.Context, keyword string, sort domain.SortOrder, page, pageSize int) ([]*catalog_models.Song, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, su.timeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	folded := foldKeyword(keyword)
	skip := int64((page - 1) * pageSize)

	songs, err := su.songs.Search(ctx, folded, sort, skip, int64(pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("browse songs: %w", err)
	}

	filter := bson.M{}
	if folded != "" {
		filter = bson.M{"$text": bson.M{"$search": folded}}
	}
	total, err := su.songs.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("browse songs: %w", err)
	}

	return songs, total, nil
}

// Detail 歌曲详情
func (su *SongUsecase) Detail(ctx context.Context, songID string) (*catalog_models.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, su.timeout)
	defer cancel()

	song, err := su.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("song detail for %s: %w", songID, err)
	}
	return song, nil
}

// TopPicked 被选次数最多的歌曲排行
func (su *SongUsecase) TopPicked(ctx context.Context, language string, limit int) ([]*catalog_models.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, su.timeout)
	defer cancel()

	if limit < 1 {
		limit = 10
	}

	songs, err := su.songs.TopPicked(ctx, language, limit)
	if err != nil {
		return nil, fmt.Errorf("top picked songs: %w", err)
	}
	return songs, nil
}

// FilterCounts 曲库统计：总量、有情绪标注量、有向量量
func (su *SongUsecase) FilterCounts(ctx context.Context) (*catalog_models.SongFilterCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, su.timeout)
	defer cancel()

	total, err := su.songs.Count(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("song filter counts: %w", err)
	}

	withMood, err := su.songs.Count(ctx, bson.M{"song_mood.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("song filter counts: %w", err)
	}

	vectorized, err := su.songs.Count(ctx, bson.M{"music_vector.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("song filter counts: %w", err)
	}

	return &catalog_models.SongFilterCounts{
		Total:      total,
		WithMood:   withMood,
		Vectorized: vectorized,
	}, nil
}
