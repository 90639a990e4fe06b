// store/auth_store.go
package store

import (
	"context"
	"sync"
	"time"

	"job_search_go/model"
	"job_search_go/repository"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// AuthAPI 认证相关的后端接口
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
	Register(ctx context.Context, email, username, password string) (*model.AuthResult, error)
	RefreshToken(ctx context.Context) (*model.AuthResult, error)
}

// authSnapshot auth-storage 快照的持久化子集
type authSnapshot struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// AuthStore 认证状态
type AuthStore struct {
	mu      sync.RWMutex
	api     AuthAPI
	storage repository.StorageRepository

	user            *model.User
	token           string
	isAuthenticated bool
	isLoading       bool
	authError       string
}

// NewAuthStore 创建认证store并从本地快照恢复登录态
func NewAuthStore(api AuthAPI, storage repository.StorageRepository) *AuthStore {
	s := &AuthStore{
		api:     api,
		storage: storage,
	}

	var snapshot authSnapshot
	if loadSnapshot(storage, StorageKeyAuth, &snapshot) {
		s.user = snapshot.User
		s.token = snapshot.Token
		s.isAuthenticated = snapshot.IsAuthenticated
	}
	return s
}

// persist 写出持久化子集（user/token/isAuthenticated），加载标志不落盘
func (s *AuthStore) persist() {
	saveSnapshot(s.storage, StorageKeyAuth, authSnapshot{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.isAuthenticated,
	})
}

// Login 登录并把令牌镜像到本地快照
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.isLoading = true
	s.authError = ""
	s.mu.Unlock()

	result, err := s.api.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.authError = err.Error()
		return err
	}

	s.user = &result.User
	s.token = result.Token
	s.isAuthenticated = true
	s.persist()
	log.Infof("登录成功: %s", result.User.Email)
	return nil
}

// Register 注册（成功即视为登录）
func (s *AuthStore) Register(ctx context.Context, email, username, password string) error {
	s.mu.Lock()
	s.isLoading = true
	s.authError = ""
	s.mu.Unlock()

	result, err := s.api.Register(ctx, email, username, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.authError = err.Error()
		return err
	}

	s.user = &result.User
	s.token = result.Token
	s.isAuthenticated = true
	s.persist()
	log.Infof("注册成功: %s", result.User.Email)
	return nil
}

// Logout 退出登录，清空本地登录态
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.authError = ""
	s.persist()
	log.Info("已退出登录")
}

// RefreshToken 刷新令牌（后台调用，失败记录到 authError）
func (s *AuthStore) RefreshToken(ctx context.Context) error {
	result, err := s.api.RefreshToken(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.authError = err.Error()
		return err
	}

	s.user = &result.User
	s.token = result.Token
	s.isAuthenticated = true
	s.authError = ""
	s.persist()
	return nil
}

// Token 返回当前访问令牌（作为 ApiClient 的 TokenProvider 使用）
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenExpiry 解析令牌的过期时间
// 只做未验签解析，用于提前安排刷新，不做任何安全判断
func (s *AuthStore) TokenExpiry() (time.Time, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsAuthenticated 是否已登录
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuthenticated
}

// User 当前用户
func (s *AuthStore) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AuthError 最近一次后台认证错误
func (s *AuthStore) AuthError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authError
}
