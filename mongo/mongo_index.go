package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/soundsage/backend/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes 启动时建立常规索引
// 向量检索索引（music_vector/lyrics_vector/cumulative_vector）在Atlas侧维护，不在这里创建
func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Song Collection
	songCollection := db.Collection(domain.CollectionCatalogSong)
	createUniqueIndex(ctx, songCollection, bson.D{{Key: "path", Value: 1}}, "path_unique")
	createTextIndex(ctx, songCollection, bson.D{
		{Key: "title", Value: "text"},
		{Key: "artist", Value: "text"},
		{Key: "album", Value: "text"},
	}, "song_text_search")
	createIndex(ctx, songCollection, bson.D{{Key: "language", Value: 1}}, "language")
	createIndex(ctx, songCollection, bson.D{{Key: "year", Value: 1}}, "year")
	createIndex(ctx, songCollection, bson.D{{Key: "song_mood", Value: 1}}, "song_mood")
	createIndex(ctx, songCollection, bson.D{{Key: "pick_count", Value: -1}}, "pick_count")
	createIndex(ctx, songCollection, bson.D{{Key: "created_at", Value: -1}}, "created_at")
	// 复合索引优化
	createIndex(ctx, songCollection, bson.D{
		{Key: "language", Value: 1},
		{Key: "pick_count", Value: -1},
	}, "language_pickcount_compound")

	// Game Session Collection
	sessionCollection := db.Collection(domain.CollectionGameSession)
	createUniqueIndex(ctx, sessionCollection, bson.D{{Key: "username", Value: 1}}, "username_unique")
	createIndex(ctx, sessionCollection, bson.D{
		{Key: "username", Value: 1},
		{Key: "version", Value: 1},
	}, "username_version_compound")
	createIndex(ctx, sessionCollection, bson.D{{Key: "updated_at", Value: -1}}, "updated_at")

	// User Collection
	userCollection := db.Collection(domain.CollectionUser)
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "username", Value: 1}}, "username_unique")
	createUniqueIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email_unique")
}

func createIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("创建索引 '%s' 失败: %v\n", name, err)
	} else {
		fmt.Printf("索引 '%s' 创建成功\n", name)
	}
}

func createUniqueIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("创建唯一索引 '%s' 失败: %v\n", name, err)
	} else {
		fmt.Printf("唯一索引 '%s' 创建成功\n", name)
	}
}

// createTextIndex 创建文本索引，避免重复创建
// MongoDB每个集合只能有一个文本索引
func createTextIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
) {
	specs, err := collection.Indexes().ListSpecifications(ctx)
	if err != nil {
		fmt.Printf("检查索引失败: %v\n", err)
		createIndex(ctx, collection, keys, name)
		return
	}

	for _, spec := range specs {
		if spec.Name == name {
			fmt.Printf("索引 '%s' 已存在，跳过创建\n", name)
			return
		}

		var specKeys bson.D
		if err := bson.Unmarshal(spec.KeysDocument, &specKeys); err == nil {
			for _, key := range specKeys {
				if key.Value == "text" {
					fmt.Printf("集合已存在文本索引 '%s'，跳过创建新的文本索引 '%s'\n", spec.Name, name)
					return
				}
			}
		}
	}

	createIndex(ctx, collection, keys, name)
}
