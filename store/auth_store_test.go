package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"job_search_go/model"
	"job_search_go/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthAPI 可编程的认证接口假实现
type fakeAuthAPI struct {
	loginResult   *model.AuthResult
	loginErr      error
	refreshResult *model.AuthResult
	refreshErr    error
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, email, username, password string) (*model.AuthResult, error) {
	return f.Login(ctx, email, password)
}

func (f *fakeAuthAPI) RefreshToken(ctx context.Context) (*model.AuthResult, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshResult, nil
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginPersistsSession(t *testing.T) {
	api := &fakeAuthAPI{
		loginResult: &model.AuthResult{
			User:  model.User{ID: "u-1", Email: "a@b.com"},
			Token: "token-1",
		},
	}
	repo := repository.NewMemoryStorageRepository()
	s := NewAuthStore(api, repo)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "token-1", s.Token())

	// 新实例从快照恢复登录态
	restored := NewAuthStore(api, repo)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "token-1", restored.Token())
	require.NotNil(t, restored.User())
	assert.Equal(t, "a@b.com", restored.User().Email)
}

func TestLoginFailure(t *testing.T) {
	api := &fakeAuthAPI{loginErr: errors.New("密码错误")}
	s := NewAuthStore(api, repository.NewMemoryStorageRepository())

	err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestLogoutClearsSession(t *testing.T) {
	api := &fakeAuthAPI{
		loginResult: &model.AuthResult{User: model.User{ID: "u-1"}, Token: "token-1"},
	}
	repo := repository.NewMemoryStorageRepository()
	s := NewAuthStore(api, repo)

	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))
	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	// 退出后的空状态同样落盘
	restored := NewAuthStore(api, repo)
	assert.False(t, restored.IsAuthenticated())
}

func TestRefreshTokenRecordsError(t *testing.T) {
	api := &fakeAuthAPI{refreshErr: errors.New("令牌已失效")}
	s := NewAuthStore(api, repository.NewMemoryStorageRepository())

	err := s.RefreshToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, "令牌已失效", s.AuthError())
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	api := &fakeAuthAPI{
		loginResult: &model.AuthResult{
			User:  model.User{ID: "u-1"},
			Token: signedToken(t, expiry),
		},
	}
	s := NewAuthStore(api, repository.NewMemoryStorageRepository())
	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))

	got, ok := s.TokenExpiry()
	require.True(t, ok)
	assert.Equal(t, expiry.Unix(), got.Unix())
}

func TestTokenExpiryUnparseable(t *testing.T) {
	s := NewAuthStore(&fakeAuthAPI{}, repository.NewMemoryStorageRepository())

	_, ok := s.TokenExpiry()
	assert.False(t, ok)
}

func TestResetAllStorage(t *testing.T) {
	repo := repository.NewMemoryStorageRepository()
	api := &fakeAuthAPI{
		loginResult: &model.AuthResult{User: model.User{ID: "u-1"}, Token: "token-1"},
	}
	s := NewAuthStore(api, repo)
	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))

	keys, err := repo.Keys()
	require.NoError(t, err)
	require.NotEmpty(t, keys)

	require.NoError(t, ResetAllStorage(repo))
	keys, err = repo.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
