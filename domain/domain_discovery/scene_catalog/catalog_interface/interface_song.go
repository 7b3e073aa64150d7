package catalog_interface

import (
	"context"
	"errors"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
)

var ErrSongNotFound = errors.New("song not found")

type SongRepository interface {
	GetByID(ctx context.Context, songID string) (*catalog_models.Song, error)
	GetByTitleArtist(ctx context.Context, title, artist string) (*catalog_models.Song, error)

	Search(ctx context.Context, keyword string, sort domain.SortOrder, skip, limit int64) ([]*catalog_models.Song, error)
	Count(ctx context.Context, filter interface{}) (int64, error)

	// SampleUnseen 按gamma衰减加权随机抽取尚未呈现的歌曲
	// 权重 rand * exp(-gamma * pick_count)，被选次数多的歌曲随游戏推进逐步降权
	SampleUnseen(ctx context.Context, excludeIDs []string, language string, gamma float64, limit int) ([]*catalog_models.Song, error)

	// GetMoodAlike 按情绪标签重叠随机取歌，排除指定歌曲
	GetMoodAlike(ctx context.Context, moods []string, excludeID string, limit int) ([]*catalog_models.Song, error)

	TopPicked(ctx context.Context, language string, limit int) ([]*catalog_models.Song, error)
	IncrementPickCount(ctx context.Context, songID string) (int, error)

	// UpsertByPath 以文件路径为幂等键写入歌曲元数据（媒体库扫描用）
	UpsertByPath(ctx context.Context, song *catalog_models.Song) error
}
