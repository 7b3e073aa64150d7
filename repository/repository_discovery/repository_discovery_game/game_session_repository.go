package repository_discovery_game

import (
	"context"
	"errors"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type gameSessionRepository struct {
	db         mongo.Database
	collection string
}

func NewGameSessionRepository(db mongo.Database, collection string) game_interface.GameSessionRepository {
	return &gameSessionRepository{
		db:         db,
		collection: collection,
	}
}

func (r *gameSessionRepository) GetByUsername(ctx context.Context, username string) (*game_models.GameSession, error) {
	coll := r.db.Collection(r.collection)
	var session game_models.GameSession
	err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&session)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, game_interface.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	return &session, nil
}

func (r *gameSessionRepository) Upsert(ctx context.Context, session *game_models.GameSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	coll := r.db.Collection(r.collection)
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"username": session.Username}, session, opts); err != nil {
		return fmt.Errorf("failed to upsert game session: %w", err)
	}

	return nil
}

// ReplaceWithVersion 乐观并发替换
// 以读到的version做过滤，未命中说明文档已被并发修改
func (r *gameSessionRepository) ReplaceWithVersion(ctx context.Context, session *game_models.GameSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	filter := bson.M{
		"username": session.Username,
		"version":  session.Version,
	}
	session.Version++

	coll := r.db.Collection(r.collection)
	result, err := coll.ReplaceOne(ctx, filter, session)
	if err != nil {
		session.Version--
		return fmt.Errorf("failed to replace game session: %w", err)
	}
	if result.MatchedCount == 0 {
		session.Version--
		return game_interface.ErrVersionConflict
	}

	return nil
}
