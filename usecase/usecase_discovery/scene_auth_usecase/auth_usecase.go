package scene_auth_usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/soundsage/backend/internal/tokenutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAccountExists 用户名或邮箱已被占用
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidCredentials 账号不存在或密码不匹配，对外不区分
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthUsecase 注册、登录与令牌签发
type AuthUsecase struct {
	users   auth_interface.UserRepository
	timeout time.Duration

	accessSecret  string
	refreshSecret string
	accessExpiry  int
	refreshExpiry int
}

func NewAuthUsecase(
	users auth_interface.UserRepository,
	timeout time.Duration,
	accessSecret, refreshSecret string,
	accessExpiry, refreshExpiry int,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		timeout:       timeout,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Signup 注册新听众并直接发放令牌对
func (au *AuthUsecase) Signup(ctx context.Context, request *auth_models.SignupRequest) (*auth_models.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.timeout)
	defer cancel()

	username := strings.TrimSpace(request.Username)
	email := strings.ToLower(strings.TrimSpace(request.Email))

	if _, err := au.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, auth_interface.ErrUserNotFound) {
		return nil, fmt.Errorf("signup %s: %w", username, err)
	}
	if _, err := au.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, auth_interface.ErrUserNotFound) {
		return nil, fmt.Errorf("signup %s: %w", username, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup %s: %w", username, err)
	}

	now := time.Now().UTC()
	user := &auth_models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := au.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("signup %s: %w", username, err)
	}

	return au.issueTokens(user)
}

// Login 用户名或邮箱登录
func (au *AuthUsecase) Login(ctx context.Context, request *auth_models.LoginRequest) (*auth_models.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.timeout)
	defer cancel()

	account := strings.TrimSpace(request.Account)

	user, err := au.users.GetByUsername(ctx, account)
	if errors.Is(err, auth_interface.ErrUserNotFound) {
		user, err = au.users.GetByEmail(ctx, strings.ToLower(account))
	}
	if errors.Is(err, auth_interface.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", account, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return au.issueTokens(user)
}

// RefreshToken 用刷新令牌换新令牌对
func (au *AuthUsecase) RefreshToken(ctx context.Context, request *auth_models.RefreshTokenRequest) (*auth_models.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.timeout)
	defer cancel()

	id, err := tokenutil.ExtractIDFromToken(request.RefreshToken, au.refreshSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := au.userByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return au.issueTokens(user)
}

// VerifyAccessToken 解析访问令牌并返回用户名，中间件使用
func (au *AuthUsecase) VerifyAccessToken(requestToken string) (string, error) {
	authorized, err := tokenutil.IsAuthorized(requestToken, au.accessSecret)
	if err != nil || !authorized {
		return "", ErrInvalidCredentials
	}
	username, err := tokenutil.ExtractUsernameFromToken(requestToken, au.accessSecret)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return username, nil
}

func (au *AuthUsecase) userByID(ctx context.Context, id string) (*auth_models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := au.users.GetByID(ctx, objID)
	if errors.Is(err, auth_interface.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

func (au *AuthUsecase) issueTokens(user *auth_models.User) (*auth_models.AuthResponse, error) {
	accessToken, err := tokenutil.CreateAccessToken(user, au.accessSecret, au.accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue tokens for %s: %w", user.Username, err)
	}
	refreshToken, err := tokenutil.CreateRefreshToken(user, au.refreshSecret, au.refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue tokens for %s: %w", user.Username, err)
	}
	return &auth_models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
