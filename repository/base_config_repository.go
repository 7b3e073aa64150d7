package repository

import (
	"context"
	"errors"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/mongo"
	"go.mongodb.org/mongo-driver/bson"
)

// ConfigMongoRepository 配置类Repository实现，面向单例或少量配置文档
type ConfigMongoRepository[T any] struct {
	db         mongo.Database
	collection string
}

// NewConfigMongoRepository 创建配置Repository实例
func NewConfigMongoRepository[T any](db mongo.Database, collection string) domain.ConfigRepository[T] {
	return &ConfigMongoRepository[T]{
		db:         db,
		collection: collection,
	}
}

// Get 获取配置（取第一个文档）
func (r *ConfigMongoRepository[T]) Get(ctx context.Context) (*T, error) {
	coll := r.db.Collection(r.collection)
	var config T
	err := coll.FindOne(ctx, bson.M{}).Decode(&config)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, fmt.Errorf("config not found in %s: %w", r.collection, driver.ErrNoDocuments)
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &config, nil
}

// Update 更新配置（不存在则插入）
func (r *ConfigMongoRepository[T]) Update(ctx context.Context, config *T) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	coll := r.db.Collection(r.collection)

	// 单例语义：清掉旧文档后写入新文档
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear config: %w", err)
	}
	if _, err := coll.InsertOne(ctx, config); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}

	return nil
}

// GetAll 获取所有配置
func (r *ConfigMongoRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find configs: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []*T
	for cursor.Next(ctx) {
		var config T
		if err := cursor.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
		configs = append(configs, &config)
	}

	return configs, nil
}

// ReplaceAll 替换所有配置
func (r *ConfigMongoRepository[T]) ReplaceAll(ctx context.Context, configs []*T) error {
	coll := r.db.Collection(r.collection)

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear configs: %w", err)
	}

	if len(configs) == 0 {
		return nil
	}

	docs := make([]interface{}, len(configs))
	for i, config := range configs {
		docs[i] = config
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert configs: %w", err)
	}

	return nil
}
