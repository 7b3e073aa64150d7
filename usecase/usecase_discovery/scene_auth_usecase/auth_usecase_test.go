package scene_auth_usecase

import (
	"context"
	"testing"
	"time"

	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_interface"
	"github.com/soundsage/backend/domain/domain_discovery/scene_auth/auth_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	byID       map[primitive.ObjectID]*auth_models.User
	byUsername map[string]*auth_models.User
	byEmail    map[string]*auth_models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[primitive.ObjectID]*auth_models.User),
		byUsername: make(map[string]*auth_models.User),
		byEmail:    make(map[string]*auth_models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *auth_models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*auth_models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *auth_models.User) error { return nil }

func (f *fakeUserRepo) UpdateByID(_ context.Context, _ primitive.ObjectID, _ bson.M) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*auth_models.User, error) { return nil, nil }

func (f *fakeUserRepo) GetByFilter(_ context.Context, _ interface{}) ([]*auth_models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetOneByFilter(_ context.Context, _ interface{}) (*auth_models.User, error) {
	return nil, auth_interface.ErrUserNotFound
}

func (f *fakeUserRepo) Count(_ context.Context, _ interface{}) (int64, error) { return 0, nil }

func (f *fakeUserRepo) GetPaginated(_ context.Context, _ interface{}, _, _ int64) ([]*auth_models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Exists(_ context.Context, _ primitive.ObjectID) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) ExistsByFilter(_ context.Context, _ interface{}) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*auth_models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*auth_models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, auth_interface.ErrUserNotFound
	}
	return user, nil
}

func newAuthUsecase(repo *fakeUserRepo) *AuthUsecase {
	return NewAuthUsecase(repo, 2*time.Second, "access-secret", "refresh-secret", 2, 168)
}

func TestSignupAndLogin(t *testing.T) {
	signup := &auth_models.SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "correct horse battery",
	}

	t.Run("注册发放令牌对并哈希存储密码", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := newAuthUsecase(repo)

		tokens, err := uc.Signup(context.Background(), signup)
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		stored := repo.byUsername["alice"]
		require.NotNil(t, stored)
		assert.Equal(t, "alice@example.com", stored.Email)
		assert.NotEqual(t, signup.Password, stored.Password)
	})

	t.Run("重复注册被拒绝", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := newAuthUsecase(repo)

		_, err := uc.Signup(context.Background(), signup)
		require.NoError(t, err)
		_, err = uc.Signup(context.Background(), signup)
		assert.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("用户名或邮箱都能登录", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := newAuthUsecase(repo)
		_, err := uc.Signup(context.Background(), signup)
		require.NoError(t, err)

		_, err = uc.Login(context.Background(), &auth_models.LoginRequest{Account: "alice", Password: signup.Password})
		assert.NoError(t, err)

		_, err = uc.Login(context.Background(), &auth_models.LoginRequest{Account: "alice@example.com", Password: signup.Password})
		assert.NoError(t, err)
	})

	t.Run("错误密码与未知账号返回同一错误", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := newAuthUsecase(repo)
		_, err := uc.Signup(context.Background(), signup)
		require.NoError(t, err)

		_, err = uc.Login(context.Background(), &auth_models.LoginRequest{Account: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = uc.Login(context.Background(), &auth_models.LoginRequest{Account: "nobody", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestTokenFlows(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUsecase(repo)
	tokens, err := uc.Signup(context.Background(), &auth_models.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("访问令牌校验出用户名", func(t *testing.T) {
		username, err := uc.VerifyAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("伪造令牌被拒绝", func(t *testing.T) {
		_, err := uc.VerifyAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("刷新令牌换发新令牌对", func(t *testing.T) {
		renewed, err := uc.RefreshToken(context.Background(), &auth_models.RefreshTokenRequest{
			RefreshToken: tokens.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, renewed.AccessToken)

		username, err := uc.VerifyAccessToken(renewed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("访问令牌不能当刷新令牌用", func(t *testing.T) {
		_, err := uc.RefreshToken(context.Background(), &auth_models.RefreshTokenRequest{
			RefreshToken: tokens.AccessToken,
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
