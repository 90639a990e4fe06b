package model

import (
	"time"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification 瞬态通知（客户端生成ID，到期自动消失）
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Duration  time.Duration    `json:"-"` // 自动消失时长，0 表示使用默认值
	CreatedAt time.Time        `json:"createdAt"`
}

// Modal 模态框（客户端生成ID，关闭时执行回调）
type Modal struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
	OnClose func() `json:"-"`
}

// Theme 主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Breakpoint 响应式断点
type Breakpoint string

const (
	BreakpointMobile  Breakpoint = "mobile"  // < 768
	BreakpointTablet  Breakpoint = "tablet"  // 768 - 1023
	BreakpointDesktop Breakpoint = "desktop" // 1024 - 1439
	BreakpointWide    Breakpoint = "wide"    // >= 1440
)

// BreakpointForWidth 根据视口宽度计算断点
func BreakpointForWidth(width int) Breakpoint {
	switch {
	case width < 768:
		return BreakpointMobile
	case width < 1024:
		return BreakpointTablet
	case width < 1440:
		return BreakpointDesktop
	default:
		return BreakpointWide
	}
}
