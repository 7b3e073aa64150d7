package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseRepository 通用Repository接口，提供标准CRUD操作
// T: 实体类型，必须包含ID字段
type BaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Update(ctx context.Context, entity *T) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetAll(ctx context.Context) ([]*T, error)
	GetByFilter(ctx context.Context, filter interface{}) ([]*T, error)
	GetOneByFilter(ctx context.Context, filter interface{}) (*T, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	GetPaginated(ctx context.Context, filter interface{}, skip, limit int64) ([]*T, error)

	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByFilter(ctx context.Context, filter interface{}) (bool, error)
}

// ConfigRepository 配置类Repository接口，适用于全局配置文档（单例或少量）
// T: 配置实体类型
type ConfigRepository[T any] interface {
	Get(ctx context.Context) (*T, error)
	Update(ctx context.Context, config *T) error
	GetAll(ctx context.Context) ([]*T, error)
	ReplaceAll(ctx context.Context, configs []*T) error
}
