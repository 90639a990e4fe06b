package store

import (
	"testing"
	"time"

	"job_search_go/model"
	"job_search_go/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUIStoreForTest() (*UIStore, repository.StorageRepository) {
	repo := repository.NewMemoryStorageRepository()
	return NewUIStore(repo, time.Second), repo
}

func TestNotificationAutoExpiry(t *testing.T) {
	s, _ := newUIStoreForTest()

	id := s.ShowNotification(model.NotifySuccess, "投递成功", 30*time.Millisecond)
	require.Len(t, s.Notifications(), 1)
	assert.Equal(t, id, s.Notifications()[0].ID)

	assert.Eventually(t, func() bool {
		return len(s.Notifications()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRemoveNotification(t *testing.T) {
	s, _ := newUIStoreForTest()

	id := s.ShowNotification(model.NotifyError, "请求失败", time.Minute)
	s.ShowNotification(model.NotifyInfo, "另一条", time.Minute)
	s.RemoveNotification(id)

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, "另一条", notifications[0].Message)

	s.ClearNotifications()
	assert.Empty(t, s.Notifications())
}

func TestModalOpenClose(t *testing.T) {
	s, _ := newUIStoreForTest()

	closed := false
	id := s.OpenModal("confirm-delete", map[string]string{"resumeId": "r-1"}, func() {
		closed = true
	})
	require.Len(t, s.Modals(), 1)

	s.CloseModal(id)
	assert.Empty(t, s.Modals())
	assert.True(t, closed)
}

func TestCloseUnknownModalNoop(t *testing.T) {
	s, _ := newUIStoreForTest()
	s.CloseModal("no-such")
	assert.Empty(t, s.Modals())
}

func TestThemePersisted(t *testing.T) {
	repo := repository.NewMemoryStorageRepository()
	s := NewUIStore(repo, time.Second)

	s.SetTheme(model.ThemeDark)
	s.SetSidebarCollapsed(true)

	restored := NewUIStore(repo, time.Second)
	assert.Equal(t, model.ThemeDark, restored.Theme())
	assert.True(t, restored.SidebarCollapsed())
	// 通知等瞬态不落盘
	assert.Empty(t, restored.Notifications())
}

func TestUpdateViewport(t *testing.T) {
	s, _ := newUIStoreForTest()

	cases := []struct {
		width    int
		expected model.Breakpoint
	}{
		{width: 375, expected: model.BreakpointMobile},
		{width: 768, expected: model.BreakpointTablet},
		{width: 1024, expected: model.BreakpointDesktop},
		{width: 1920, expected: model.BreakpointWide},
	}
	for _, c := range cases {
		s.UpdateViewport(c.width)
		assert.Equal(t, c.expected, s.Breakpoint(), "width=%d", c.width)
	}
}
