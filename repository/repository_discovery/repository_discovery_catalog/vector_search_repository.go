package repository_discovery_catalog

import (
	"context"
	"fmt"

	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

// vectorSearchRepository 基于Atlas $vectorSearch的近邻检索
// 向量索引在集群侧维护，这里只负责发起查询
type vectorSearchRepository struct {
	db          mongo.Database
	collection  string
	musicIndex  string
	lyricsIndex string
}

func NewVectorSearchRepository(db mongo.Database, collection, musicIndex, lyricsIndex string) catalog_interface.VectorSearchRepository {
	return &vectorSearchRepository{
		db:          db,
		collection:  collection,
		musicIndex:  musicIndex,
		lyricsIndex: lyricsIndex,
	}
}

func (r *vectorSearchRepository) SimilarByMusicVector(ctx context.Context, queryVector []float64, numCandidates, limit int) ([]catalog_models.SongCandidate, error) {
	return r.similar(ctx, r.musicIndex, "music_vector", queryVector, numCandidates, limit)
}

func (r *vectorSearchRepository) SimilarByLyricsVector(ctx context.Context, queryVector []float64, numCandidates, limit int) ([]catalog_models.SongCandidate, error) {
	return r.similar(ctx, r.lyricsIndex, "lyrics_vector", queryVector, numCandidates, limit)
}

func (r *vectorSearchRepository) similar(ctx context.Context, indexName, path string, queryVector []float64, numCandidates, limit int) ([]catalog_models.SongCandidate, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("query vector cannot be empty")
	}

	coll := r.db.Collection(r.collection)

	pipeline := []bson.D{
		{
			{Key: "$vectorSearch", Value: bson.D{
				{Key: "index", Value: indexName},
				{Key: "path", Value: path},
				{Key: "queryVector", Value: queryVector},
				{Key: "numCandidates", Value: numCandidates},
				{Key: "limit", Value: limit},
			}},
		},
		{
			{Key: "$project", Value: bson.D{
				{Key: "_id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
				{Key: "title", Value: 1},
				{Key: "artist", Value: 1},
				{Key: "album", Value: 1},
				{Key: "album_art", Value: 1},
				{Key: "language", Value: 1},
				{Key: "year", Value: 1},
				{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
			}},
		},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run vector search on %s: %w", path, err)
	}
	defer cursor.Close(ctx)

	var candidates []catalog_models.SongCandidate
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode vector search results: %w", err)
	}

	return candidates, nil
}
