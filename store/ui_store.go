// store/ui_store.go
package store

import (
	"sync"
	"time"

	"job_search_go/model"
	"job_search_go/repository"

	"github.com/google/uuid"
)

// uiSnapshot ui-storage 快照的持久化子集（通知、模态框等瞬态不落盘）
type uiSnapshot struct {
	Theme            model.Theme `json:"theme"`
	SidebarCollapsed bool        `json:"sidebarCollapsed"`
}

// UIStore 界面状态：通知、模态框、主题、断点
type UIStore struct {
	mu      sync.Mutex
	storage repository.StorageRepository

	notifications []model.Notification
	modals        []model.Modal
	theme         model.Theme
	sidebarCollapsed bool
	breakpoint    model.Breakpoint

	defaultNotifyDuration time.Duration
	timers                map[string]*time.Timer
}

// NewUIStore 创建界面store并从本地快照恢复主题偏好
func NewUIStore(storage repository.StorageRepository, defaultNotifyDuration time.Duration) *UIStore {
	if defaultNotifyDuration <= 0 {
		defaultNotifyDuration = 5 * time.Second
	}
	s := &UIStore{
		storage:               storage,
		theme:                 model.ThemeLight,
		breakpoint:            model.BreakpointDesktop,
		defaultNotifyDuration: defaultNotifyDuration,
		timers:                make(map[string]*time.Timer),
	}

	var snapshot uiSnapshot
	if loadSnapshot(storage, StorageKeyUI, &snapshot) {
		if snapshot.Theme != "" {
			s.theme = snapshot.Theme
		}
		s.sidebarCollapsed = snapshot.SidebarCollapsed
	}
	return s
}

func (s *UIStore) persist() {
	saveSnapshot(s.storage, StorageKeyUI, uiSnapshot{
		Theme:            s.theme,
		SidebarCollapsed: s.sidebarCollapsed,
	})
}

// ShowNotification 弹出通知，到期自动移除，返回通知ID
func (s *UIStore) ShowNotification(notifyType model.NotificationType, message string, duration time.Duration) string {
	if duration <= 0 {
		duration = s.defaultNotifyDuration
	}

	notification := model.Notification{
		ID:        uuid.NewString(),
		Type:      notifyType,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, notification)
	id := notification.ID
	s.timers[id] = time.AfterFunc(duration, func() {
		s.RemoveNotification(id)
	})
	return id
}

// RemoveNotification 移除通知并停止其定时器
func (s *UIStore) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	kept := make([]model.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// ClearNotifications 清空全部通知
func (s *UIStore) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.notifications = nil
}

// OpenModal 打开模态框，返回模态框ID
func (s *UIStore) OpenModal(name string, payload any, onClose func()) string {
	modal := model.Modal{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
		OnClose: onClose,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals = append(s.modals, modal)
	return modal.ID
}

// CloseModal 关闭模态框并执行其回调
func (s *UIStore) CloseModal(id string) {
	s.mu.Lock()
	var onClose func()
	kept := make([]model.Modal, 0, len(s.modals))
	for _, m := range s.modals {
		if m.ID == id {
			onClose = m.OnClose
			continue
		}
		kept = append(kept, m)
	}
	s.modals = kept
	s.mu.Unlock()

	// 回调在锁外执行，避免回调里再操作store时死锁
	if onClose != nil {
		onClose()
	}
}

// SetTheme 切换主题
func (s *UIStore) SetTheme(theme model.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.persist()
}

// SetSidebarCollapsed 设置侧边栏折叠状态
func (s *UIStore) SetSidebarCollapsed(collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarCollapsed = collapsed
	s.persist()
}

// UpdateViewport 根据视口宽度更新断点
func (s *UIStore) UpdateViewport(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakpoint = model.BreakpointForWidth(width)
}

// ---------- 只读访问 ----------

// Notifications 当前通知列表
func (s *UIStore) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.notifications...)
}

// Modals 当前模态框列表
func (s *UIStore) Modals() []model.Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Modal(nil), s.modals...)
}

// Theme 当前主题
func (s *UIStore) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SidebarCollapsed 侧边栏是否折叠
func (s *UIStore) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarCollapsed
}

// Breakpoint 当前断点
func (s *UIStore) Breakpoint() model.Breakpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breakpoint
}
