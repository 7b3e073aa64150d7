package repository_discovery_auth

import (
	"context"
	"errors"

	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/soundsage/backend/mongo"
	"github.com/soundsage/backend/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRepository 在通用Repository上补充账号查询，并统一翻译未命中错误
type userRepository struct {
	*repository.BaseMongoRepository[auth_models.User]
}

func NewUserRepository(db mongo.Database, collection string) auth_interface.UserRepository {
	return &userRepository{
		BaseMongoRepository: repository.NewBaseMongoRepository[auth_models.User](db, collection),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*auth_models.User, error) {
	user, err := r.BaseMongoRepository.GetByID(ctx, id)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*auth_models.User, error) {
	user, err := r.GetOneByFilter(ctx, bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*auth_models.User, error) {
	user, err := r.GetOneByFilter(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, nil
}
