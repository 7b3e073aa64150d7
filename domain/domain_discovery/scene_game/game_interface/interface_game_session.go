package game_interface

import (
	"context"
	"errors"

	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
)

var (
	ErrSessionNotFound = errors.New("game session not found")

	// ErrVersionConflict 替换时version已被并发修改，调用方需重读重算后重试
	ErrVersionConflict = errors.New("game session version conflict")
)

type GameSessionRepository interface {
	GetByUsername(ctx context.Context, username string) (*game_models.GameSession, error)
	Upsert(ctx context.Context, session *game_models.GameSession) error

	// ReplaceWithVersion 以 {username, version} 过滤做整文档替换
	// 未命中即返回ErrVersionConflict，命中后session.Version已递增
	ReplaceWithVersion(ctx context.Context, session *game_models.GameSession) error
}

// ProfileSearchRepository 在所有听众画像上做向量近邻匹配
type ProfileSearchRepository interface {
	MatchProfiles(ctx context.Context, cumulativeVector []float64, excludeUsername string, limit int) ([]game_models.ProfileMatch, error)
}
