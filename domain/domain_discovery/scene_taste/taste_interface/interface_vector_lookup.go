package taste_interface

import (
	"context"
	"errors"
)

// ErrSongVectorNotFound 歌曲没有可用的嵌入向量
// 属于可恢复状态：调用方按"无预测可用"降级处理，不终止所在流程
var ErrSongVectorNotFound = errors.New("song vector not found")

// SongVectorLookup 按歌曲ID解析嵌入向量的外部协作方
type SongVectorLookup interface {
	GetSongVector(ctx context.Context, songID string) ([]float64, error)
}
