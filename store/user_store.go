// store/user_store.go
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"job_search_go/model"
	"job_search_go/repository"

	log "github.com/sirupsen/logrus"
)

// ErrResumeNotFound 指定简历不在本地列表中
var ErrResumeNotFound = errors.New("简历不存在")

// UserAPI 用户相关的后端接口
type UserAPI interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, patch model.UserProfilePatch) (*model.UserProfile, error)
	ListResumes(ctx context.Context) ([]model.Resume, error)
	CreateResume(ctx context.Context, resume model.Resume) (*model.Resume, error)
	UpdateResume(ctx context.Context, id string, patch model.ResumePatch) (*model.Resume, error)
	DeleteResume(ctx context.Context, id string) error
	GetPreferences(ctx context.Context) (*model.UserPreferences, error)
	UpdatePreferences(ctx context.Context, patch model.UserPreferencesPatch) (*model.UserPreferences, error)
}

// userSnapshot user-storage 快照的持久化子集
// PendingDefaultResumeID 是"设置默认简历"流程的中间状态标记，
// 流程中断后下次启动据此收敛单默认不变量
type userSnapshot struct {
	Profile                *model.UserProfile     `json:"profile"`
	Preferences            *model.UserPreferences `json:"preferences"`
	PendingDefaultResumeID string                 `json:"pendingDefaultResumeId,omitempty"`
}

// UserStore 用户状态：个人资料、简历集合、偏好设置
type UserStore struct {
	mu      sync.Mutex
	api     UserAPI
	storage repository.StorageRepository

	profile     *model.UserProfile
	resumes     []model.Resume
	preferences *model.UserPreferences
	userError   string

	pendingDefaultResumeID string
}

// NewUserStore 创建用户store并从本地快照恢复资料/偏好
func NewUserStore(api UserAPI, storage repository.StorageRepository) *UserStore {
	s := &UserStore{
		api:     api,
		storage: storage,
	}

	var snapshot userSnapshot
	if loadSnapshot(storage, StorageKeyUser, &snapshot) {
		s.profile = snapshot.Profile
		s.preferences = snapshot.Preferences
		s.pendingDefaultResumeID = snapshot.PendingDefaultResumeID
	}
	return s
}

func (s *UserStore) persist() {
	saveSnapshot(s.storage, StorageKeyUser, userSnapshot{
		Profile:                s.profile,
		Preferences:            s.preferences,
		PendingDefaultResumeID: s.pendingDefaultResumeID,
	})
}

// FetchProfile 拉取个人资料
func (s *UserStore) FetchProfile(ctx context.Context) error {
	profile, err := s.api.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.userError = err.Error()
		return err
	}
	s.profile = profile
	s.persist()
	return nil
}

// UpdateProfile 更新个人资料
func (s *UserStore) UpdateProfile(ctx context.Context, patch model.UserProfilePatch) error {
	profile, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.persist()
	return nil
}

// FetchResumes 拉取简历列表
func (s *UserStore) FetchResumes(ctx context.Context) error {
	resumes, err := s.api.ListResumes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.userError = err.Error()
		return err
	}
	s.resumes = resumes
	return nil
}

// CreateResume 新建简历，服务端返回的对象追加到本地列表
func (s *UserStore) CreateResume(ctx context.Context, resume model.Resume) (*model.Resume, error) {
	created, err := s.api.CreateResume(ctx, resume)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes = append(s.resumes, *created)
	return created, nil
}

// UpdateResume 更新简历
func (s *UserStore) UpdateResume(ctx context.Context, id string, patch model.ResumePatch) (*model.Resume, error) {
	updated, err := s.api.UpdateResume(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceResumeLocked(*updated)
	return updated, nil
}

// DeleteResume 删除简历
func (s *UserStore) DeleteResume(ctx context.Context, id string) error {
	if err := s.api.DeleteResume(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]model.Resume, 0, len(s.resumes))
	for _, r := range s.resumes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.resumes = kept
	return nil
}

// SetDefaultResume 设置默认简历
// 单默认不变量需要跨多个请求维护：先持久化中间状态标记，再提升目标简历，
// 然后逐个降级其余仍为默认的简历；全部成功后才清除标记。
// 中途失败时标记保留在快照里，下次启动由 RecoverPendingDefault 收敛。
func (s *UserStore) SetDefaultResume(ctx context.Context, id string) error {
	s.mu.Lock()
	if !s.hasResumeLocked(id) {
		s.mu.Unlock()
		return ErrResumeNotFound
	}
	s.pendingDefaultResumeID = id
	s.persist()
	s.mu.Unlock()

	return s.setDefaultResume(ctx, id)
}

func (s *UserStore) setDefaultResume(ctx context.Context, id string) error {
	// 第一步：提升目标简历
	isDefault := true
	promoted, err := s.api.UpdateResume(ctx, id, model.ResumePatch{IsDefault: &isDefault})
	if err != nil {
		// 服务端未发生任何变化，标记直接清除
		s.mu.Lock()
		s.pendingDefaultResumeID = ""
		s.persist()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.replaceResumeLocked(*promoted)
	// 收集其余仍为默认的简历（目标简历刚被替换，不会进入降级列表）
	var demoteIDs []string
	for _, r := range s.resumes {
		if r.ID != id && r.IsDefault {
			demoteIDs = append(demoteIDs, r.ID)
		}
	}
	s.mu.Unlock()

	// 第二步：逐个降级
	notDefault := false
	for _, demoteID := range demoteIDs {
		demoted, err := s.api.UpdateResume(ctx, demoteID, model.ResumePatch{IsDefault: &notDefault})
		if err != nil {
			// 标记保留，等待下次启动收敛
			log.Warnf("降级旧默认简历失败 resumeId=%s: %v", demoteID, err)
			return err
		}
		s.mu.Lock()
		s.replaceResumeLocked(*demoted)
		s.mu.Unlock()
	}

	// 全部完成，清除标记
	s.mu.Lock()
	s.pendingDefaultResumeID = ""
	s.persist()
	s.mu.Unlock()
	return nil
}

// RecoverPendingDefault 启动时收敛单默认不变量
// 上次"设置默认简历"流程如有中断，重新拉取简历列表并补完降级
func (s *UserStore) RecoverPendingDefault(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pendingDefaultResumeID
	s.mu.Unlock()
	if pending == "" {
		return nil
	}

	log.Infof("检测到未完成的默认简历设置，开始恢复: resumeId=%s", pending)
	if err := s.FetchResumes(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.hasResumeLocked(pending) {
		// 目标简历已不存在，放弃恢复
		s.pendingDefaultResumeID = ""
		s.persist()
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.setDefaultResume(ctx, pending)
}

// DuplicateResume 复制简历
// 浅拷贝源简历，名称加副本后缀、清除默认标记和身份字段，走新建流程提交
func (s *UserStore) DuplicateResume(ctx context.Context, id string) (*model.Resume, error) {
	s.mu.Lock()
	var source *model.Resume
	for i := range s.resumes {
		if s.resumes[i].ID == id {
			source = &s.resumes[i]
			break
		}
	}
	if source == nil {
		s.mu.Unlock()
		return nil, ErrResumeNotFound
	}

	clone := *source
	s.mu.Unlock()

	clone.ID = ""
	clone.Name = clone.Name + "（副本）"
	clone.IsDefault = false
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}

	return s.CreateResume(ctx, clone)
}

// FetchPreferences 拉取偏好设置
func (s *UserStore) FetchPreferences(ctx context.Context) error {
	prefs, err := s.api.GetPreferences(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.userError = err.Error()
		return err
	}
	s.preferences = prefs
	s.persist()
	return nil
}

// UpdatePreferences 更新偏好设置
func (s *UserStore) UpdatePreferences(ctx context.Context, patch model.UserPreferencesPatch) error {
	prefs, err := s.api.UpdatePreferences(ctx, patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = prefs
	s.persist()
	return nil
}

func (s *UserStore) hasResumeLocked(id string) bool {
	for _, r := range s.resumes {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (s *UserStore) replaceResumeLocked(resume model.Resume) {
	for i := range s.resumes {
		if s.resumes[i].ID == resume.ID {
			s.resumes[i] = resume
			return
		}
	}
	s.resumes = append(s.resumes, resume)
}

// ---------- 只读访问 ----------

// Profile 个人资料
func (s *UserStore) Profile() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Resumes 简历列表
func (s *UserStore) Resumes() []model.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Resume(nil), s.resumes...)
}

// DefaultResume 当前默认简历（没有时返回 nil）
func (s *UserStore) DefaultResume() *model.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resumes {
		if s.resumes[i].IsDefault {
			r := s.resumes[i]
			return &r
		}
	}
	return nil
}

// Preferences 偏好设置
func (s *UserStore) Preferences() *model.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences
}

// PendingDefaultResumeID 未完成的默认简历设置标记（空串表示无）
func (s *UserStore) PendingDefaultResumeID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDefaultResumeID
}

// UserError 最近一次读取错误信息
func (s *UserStore) UserError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userError
}
