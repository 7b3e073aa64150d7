package repository_discovery_catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_catalog/catalog_models"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type songRepository struct {
	db         mongo.Database
	collection string
}

func NewSongRepository(db mongo.Database, collection string) catalog_interface.SongRepository {
	return &songRepository{
		db:         db,
		collection: collection,
	}
}

func (r *songRepository) GetByID(ctx context.Context, songID string) (*catalog_models.Song, error) {
	objID, err := primitive.ObjectIDFromHex(songID)
	if err != nil {
		return nil, fmt.Errorf("invalid song id %s: %w", songID, catalog_interface.ErrSongNotFound)
	}

	coll := r.db.Collection(r.collection)
	var song catalog_models.Song
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&song); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, catalog_interface.ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return &song, nil
}

func (r *songRepository) GetByTitleArtist(ctx context.Context, title, artist string) (*catalog_models.Song, error) {
	coll := r.db.Collection(r.collection)
	var song catalog_models.Song
	err := coll.FindOne(ctx, bson.M{"title": title, "artist": artist}).Decode(&song)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, catalog_interface.ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return &song, nil
}

func (r *songRepository) Search(ctx context.Context, keyword string, sort domain.SortOrder, skip, limit int64) ([]*catalog_models.Song, error) {
	coll := r.db.Collection(r.collection)

	filter := bson.M{}
	if keyword != "" {
		filter = bson.M{"$text": bson.M{"$search": keyword}}
	}

	opts := options.Find().
		SetSort(buildSongSort(sort)).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	defer cursor.Close(ctx)

	var songs []*catalog_models.Song
	for cursor.Next(ctx) {
		var song catalog_models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	return songs, nil
}

func (r *songRepository) Count(ctx context.Context, filter interface{}) (int64, error) {
	coll := r.db.Collection(r.collection)
	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// SampleUnseen 加权随机抽样
// 权重 = rand * exp(-gamma * pick_count)：gamma越大，被选次数多的歌越难出场
func (r *songRepository) SampleUnseen(ctx context.Context, excludeIDs []string, language string, gamma float64, limit int) ([]*catalog_models.Song, error) {
	coll := r.db.Collection(r.collection)

	match := bson.D{}
	if len(excludeIDs) > 0 {
		objIDs := make([]primitive.ObjectID, 0, len(excludeIDs))
		for _, id := range excludeIDs {
			objID, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				continue
			}
			objIDs = append(objIDs, objID)
		}
		match = append(match, bson.E{Key: "_id", Value: bson.D{{Key: "$nin", Value: objIDs}}})
	}
	if language != "" {
		match = append(match, bson.E{Key: "language", Value: language})
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{
			{Key: "$addFields", Value: bson.D{
				{Key: "sample_weight", Value: bson.D{
					{Key: "$multiply", Value: bson.A{
						bson.D{{Key: "$rand", Value: bson.D{}}},
						bson.D{{Key: "$exp", Value: bson.D{
							{Key: "$multiply", Value: bson.A{
								-gamma,
								bson.D{{Key: "$ifNull", Value: bson.A{"$pick_count", 0}}},
							}},
						}}},
					}},
				}},
			}},
		},
		{{Key: "$sort", Value: bson.D{{Key: "sample_weight", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample songs: %w", err)
	}
	defer cursor.Close(ctx)

	var songs []*catalog_models.Song
	for cursor.Next(ctx) {
		var song catalog_models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	return songs, nil
}

func (r *songRepository) GetMoodAlike(ctx context.Context, moods []string, excludeID string, limit int) ([]*catalog_models.Song, error) {
	coll := r.db.Collection(r.collection)

	match := bson.D{{Key: "song_mood", Value: bson.D{{Key: "$in", Value: moods}}}}
	if objID, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		match = append(match, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: objID}}})
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: limit}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find mood alike songs: %w", err)
	}
	defer cursor.Close(ctx)

	var songs []*catalog_models.Song
	for cursor.Next(ctx) {
		var song catalog_models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	return songs, nil
}

func (r *songRepository) TopPicked(ctx context.Context, language string, limit int) ([]*catalog_models.Song, error) {
	coll := r.db.Collection(r.collection)

	filter := bson.M{"pick_count": bson.M{"$gt": 0}}
	if language != "" {
		filter["language"] = language
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pick_count", Value: -1}, {Key: "title", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get top picked songs: %w", err)
	}
	defer cursor.Close(ctx)

	var songs []*catalog_models.Song
	for cursor.Next(ctx) {
		var song catalog_models.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, fmt.Errorf("failed to decode song: %w", err)
		}
		songs = append(songs, &song)
	}

	return songs, nil
}

func (r *songRepository) IncrementPickCount(ctx context.Context, songID string) (int, error) {
	objID, err := primitive.ObjectIDFromHex(songID)
	if err != nil {
		return 0, fmt.Errorf("invalid song id %s: %w", songID, catalog_interface.ErrSongNotFound)
	}

	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$inc": bson.M{"pick_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment pick count: %w", err)
	}
	if result.MatchedCount == 0 {
		return 0, catalog_interface.ErrSongNotFound
	}

	var song catalog_models.Song
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&song); err != nil {
		return 0, fmt.Errorf("failed to read pick count: %w", err)
	}
	return song.PickCount, nil
}

// UpsertByPath 以路径为幂等键写入，重复扫描不产生重复文档
func (r *songRepository) UpsertByPath(ctx context.Context, song *catalog_models.Song) error {
	if song == nil || song.Path == "" {
		return errors.New("song path cannot be empty")
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":      song.Title,
			"artist":     song.Artist,
			"album":      song.Album,
			"genres":     song.Genres,
			"year":       song.Year,
			"suffix":     song.Suffix,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"path":       song.Path,
			"pick_count": 0,
			"created_at": now,
		},
	}

	coll := r.db.Collection(r.collection)
	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, bson.M{"path": song.Path}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert song by path: %w", err)
	}

	return nil
}

// buildSongSort 排序字段白名单，非法字段退回默认排序
func buildSongSort(sort domain.SortOrder) bson.D {
	field := sort.Sort
	switch field {
	case "title", "artist", "album", "year", "pick_count", "created_at":
	default:
		field = "title"
	}

	direction := 1
	if sort.Order == "desc" {
		direction = -1
	}

	return bson.D{{Key: field, Value: direction}, {Key: "_id", Value: 1}}
}
