// service/refresh_scheduler.go
package service

import (
	"context"
	"fmt"
	"time"

	"job_search_go/store"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// RefreshScheduler 令牌刷新调度器
// 周期性检查令牌剩余有效期，临近过期时提前刷新
type RefreshScheduler struct {
	cron  *cron.Cron
	auth  *store.AuthStore
	spec  string
	ahead time.Duration
}

// NewRefreshScheduler 创建刷新调度器
// spec 为检查周期（如 "@every 5m"），ahead 为过期前提前刷新的时长
func NewRefreshScheduler(auth *store.AuthStore, spec string, ahead time.Duration) *RefreshScheduler {
	return &RefreshScheduler{
		cron:  cron.New(),
		auth:  auth,
		spec:  spec,
		ahead: ahead,
	}
}

// Start 启动调度
func (s *RefreshScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.checkOnce); err != nil {
		return fmt.Errorf("注册令牌刷新任务失败: %v", err)
	}
	s.cron.Start()
	log.Infof("令牌刷新调度已启动: %s", s.spec)
	return nil
}

// Stop 停止调度
func (s *RefreshScheduler) Stop() {
	s.cron.Stop()
}

// checkOnce 执行一次检查
func (s *RefreshScheduler) checkOnce() {
	if !s.auth.IsAuthenticated() {
		return
	}

	expiry, ok := s.auth.TokenExpiry()
	if ok && time.Until(expiry) > s.ahead {
		return
	}

	// 解析不出过期时间的令牌也走刷新，交给后端判断
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.auth.RefreshToken(ctx); err != nil {
		log.Warnf("令牌刷新失败: %v", err)
		return
	}
	log.Debug("令牌已刷新")
}
