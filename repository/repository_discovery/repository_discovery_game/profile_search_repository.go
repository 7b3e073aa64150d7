package repository_discovery_game

import (
	"context"
	"fmt"

	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_game/game_models"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

// profileSearchRepository 在听众画像向量上做近邻检索，找口味相近的其他听众
type profileSearchRepository struct {
	db         mongo.Database
	collection string
	indexName  string
}

func NewProfileSearchRepository(db mongo.Database, collection, indexName string) game_interface.ProfileSearchRepository {
	return &profileSearchRepository{
		db:         db,
		collection: collection,
		indexName:  indexName,
	}
}

func (r *profileSearchRepository) MatchProfiles(ctx context.Context, cumulativeVector []float64, excludeUsername string, limit int) ([]game_models.ProfileMatch, error) {
	if len(cumulativeVector) == 0 {
		return nil, fmt.Errorf("cumulative vector cannot be empty")
	}

	coll := r.db.Collection(r.collection)

	// 多召回一条用于排除自己
	pipeline := []bson.D{
		{
			{Key: "$vectorSearch", Value: bson.D{
				{Key: "index", Value: r.indexName},
				{Key: "path", Value: "user_profile.cumulative_vector"},
				{Key: "queryVector", Value: cumulativeVector},
				{Key: "numCandidates", Value: (limit + 1) * 10},
				{Key: "limit", Value: limit + 1},
			}},
		},
		{
			{Key: "$match", Value: bson.D{
				{Key: "username", Value: bson.D{{Key: "$ne", Value: excludeUsername}}},
			}},
		},
		{{Key: "$limit", Value: limit}},
		{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 0},
				{Key: "username", Value: 1},
				{Key: "title", Value: "$last_favorite.title"},
				{Key: "artist", Value: "$last_favorite.artist"},
				{Key: "album", Value: "$last_favorite.album"},
			}},
		},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to match profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []game_models.ProfileMatch
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode profile matches: %w", err)
	}

	return matches, nil
}
