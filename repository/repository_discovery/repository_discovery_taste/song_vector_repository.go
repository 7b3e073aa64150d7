package repository_discovery_taste

import (
	"context"
	"errors"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/soundsage/backend/domain/domain_discovery/scene_taste/taste_interface"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// songVectorRepository 从曲库集合解析歌曲的音乐向量
type songVectorRepository struct {
	db         mongo.Database
	collection string
}

func NewSongVectorRepository(db mongo.Database, collection string) taste_interface.SongVectorLookup {
	return &songVectorRepository{
		db:         db,
		collection: collection,
	}
}

func (r *songVectorRepository) GetSongVector(ctx context.Context, songID string) ([]float64, error) {
	objID, err := primitive.ObjectIDFromHex(songID)
	if err != nil {
		return nil, fmt.Errorf("invalid song id %s: %w", songID, taste_interface.ErrSongVectorNotFound)
	}

	coll := r.db.Collection(r.collection)

	var doc struct {
		MusicVector []float64 `bson:"music_vector"`
	}
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, taste_interface.ErrSongVectorNotFound
		}
		return nil, fmt.Errorf("failed to get song vector: %w", err)
	}
	if len(doc.MusicVector) == 0 {
		return nil, taste_interface.ErrSongVectorNotFound
	}

	return doc.MusicVector, nil
}
