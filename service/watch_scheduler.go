// service/watch_scheduler.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"job_search_go/config"
	"job_search_go/model"
	"job_search_go/store"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// WatchScheduler 定时搜索调度器
// 按配置的关键词周期性搜索，发现新职位时弹通知提醒
type WatchScheduler struct {
	cron *cron.Cron
	api  store.SearchAPI
	ui   *store.UIStore
	cfg  config.WatchConfig

	mu   sync.Mutex
	seen map[string]bool // 已提醒过的职位ID
}

// NewWatchScheduler 创建定时搜索调度器
func NewWatchScheduler(api store.SearchAPI, ui *store.UIStore, cfg config.WatchConfig) *WatchScheduler {
	return &WatchScheduler{
		cron: cron.New(),
		api:  api,
		ui:   ui,
		cfg:  cfg,
		seen: make(map[string]bool),
	}
}

// Start 启动调度，注册后立即执行一次避免等待首个周期
func (s *WatchScheduler) Start() error {
	if !s.cfg.Enabled || len(s.cfg.Keywords) == 0 {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Cron, s.RunOnce); err != nil {
		return fmt.Errorf("注册定时搜索任务失败: %v", err)
	}
	s.cron.Start()
	go s.RunOnce()
	log.Infof("定时搜索调度已启动: %s 关键词=%v", s.cfg.Cron, s.cfg.Keywords)
	return nil
}

// Stop 停止调度
func (s *WatchScheduler) Stop() {
	s.cron.Stop()
}

// RunOnce 执行一轮搜索
func (s *WatchScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var fresh []model.Job
	for _, keyword := range s.cfg.Keywords {
		req := model.SearchRequest{
			Query: model.SearchQuery{
				Keyword:   keyword,
				Location:  s.cfg.Location,
				Platforms: s.cfg.Platforms,
			},
			Page:     1,
			PageSize: 20,
			SortBy:   model.SortByDate,
		}

		result, err := s.api.SearchJobs(ctx, req)
		if err != nil {
			log.Warnf("定时搜索失败 keyword=%s: %v", keyword, err)
			continue
		}

		s.mu.Lock()
		for _, job := range result.Jobs {
			if !s.seen[job.ID] {
				s.seen[job.ID] = true
				fresh = append(fresh, job)
			}
		}
		s.mu.Unlock()
	}

	if len(fresh) == 0 {
		return
	}

	message := fmt.Sprintf("发现 %d 个新职位，如 %s", len(fresh), fresh[0].String())
	s.ui.ShowNotification(model.NotifyInfo, message, 0)
	log.Infof("定时搜索发现新职位: %d 个", len(fresh))
}
