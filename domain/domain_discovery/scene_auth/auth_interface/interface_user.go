package auth_interface

import (
	"context"
	"errors"

	"github.com/soundsage/backend/domain"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	domain.BaseRepository[auth_models.User]

	GetByUsername(ctx context.Context, username string) (*auth_models.User, error)
	GetByEmail(ctx context.Context, email string) (*auth_models.User, error)
}
