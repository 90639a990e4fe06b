package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"job_search_go/model"
	"job_search_go/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserAPI 模拟服务端的简历存储，默认标记按请求逐条更新
type fakeUserAPI struct {
	mu        sync.Mutex
	resumes   map[string]model.Resume
	nextID    int
	failOn    map[string]error // 指定简历ID的更新请求直接失败
	profile   *model.UserProfile
	prefs     *model.UserPreferences
}

func newFakeUserAPI() *fakeUserAPI {
	return &fakeUserAPI{
		resumes: make(map[string]model.Resume),
		failOn:  make(map[string]error),
		nextID:  100,
	}
}

func (f *fakeUserAPI) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		return nil, errors.New("资料不存在")
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeUserAPI) UpdateProfile(ctx context.Context, patch model.UserProfilePatch) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profile == nil {
		f.profile = &model.UserProfile{}
	}
	if patch.Name != nil {
		f.profile.Name = *patch.Name
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeUserAPI) ListResumes(ctx context.Context) ([]model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Resume, 0, len(f.resumes))
	for _, r := range f.resumes {
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeUserAPI) CreateResume(ctx context.Context, resume model.Resume) (*model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	resume.ID = fmtID(f.nextID)
	f.resumes[resume.ID] = resume
	return &resume, nil
}

func (f *fakeUserAPI) UpdateResume(ctx context.Context, id string, patch model.ResumePatch) (*model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[id]; ok {
		return nil, err
	}
	resume, ok := f.resumes[id]
	if !ok {
		return nil, errors.New("简历不存在")
	}
	if patch.Name != nil {
		resume.Name = *patch.Name
	}
	if patch.IsDefault != nil {
		resume.IsDefault = *patch.IsDefault
	}
	f.resumes[id] = resume
	return &resume, nil
}

func (f *fakeUserAPI) DeleteResume(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.resumes, id)
	return nil
}

func (f *fakeUserAPI) GetPreferences(ctx context.Context) (*model.UserPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		return &model.UserPreferences{}, nil
	}
	p := *f.prefs
	return &p, nil
}

func (f *fakeUserAPI) UpdatePreferences(ctx context.Context, patch model.UserPreferencesPatch) (*model.UserPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		f.prefs = &model.UserPreferences{}
	}
	if patch.RemoteOnly != nil {
		f.prefs.RemoteOnly = *patch.RemoteOnly
	}
	p := *f.prefs
	return &p, nil
}

// serverDefaultCount 服务端视角的默认简历数量
func (f *fakeUserAPI) serverDefaultCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.resumes {
		if r.IsDefault {
			count++
		}
	}
	return count
}

func fmtID(n int) string {
	return fmt.Sprintf("r-%d", n)
}

func seedResumes(api *fakeUserAPI) {
	api.resumes["r-1"] = model.Resume{ID: "r-1", Name: "基础简历", IsDefault: true}
	api.resumes["r-2"] = model.Resume{ID: "r-2", Name: "后端简历"}
	api.resumes["r-3"] = model.Resume{ID: "r-3", Name: "全栈简历"}
}

func newUserStoreForTest(api UserAPI) (*UserStore, repository.StorageRepository) {
	repo := repository.NewMemoryStorageRepository()
	return NewUserStore(api, repo), repo
}

func TestSetDefaultResumeMaintainsSingleDefault(t *testing.T) {
	api := newFakeUserAPI()
	seedResumes(api)
	s, _ := newUserStoreForTest(api)
	ctx := context.Background()

	require.NoError(t, s.FetchResumes(ctx))
	require.NoError(t, s.SetDefaultResume(ctx, "r-2"))

	// 服务端和本地都只剩一份默认简历
	assert.Equal(t, 1, api.serverDefaultCount())
	defaultResume := s.DefaultResume()
	require.NotNil(t, defaultResume)
	assert.Equal(t, "r-2", defaultResume.ID)
	assert.Empty(t, s.PendingDefaultResumeID())
}

func TestSetDefaultResumeDemoteFailureLeavesPendingFlag(t *testing.T) {
	api := newFakeUserAPI()
	seedResumes(api)
	s, repo := newUserStoreForTest(api)
	ctx := context.Background()

	require.NoError(t, s.FetchResumes(ctx))

	// 提升成功但降级旧默认简历失败
	api.mu.Lock()
	api.failOn["r-1"] = errors.New("网络超时")
	api.mu.Unlock()

	err := s.SetDefaultResume(ctx, "r-2")
	require.Error(t, err)
	// 服务端此刻有两份默认简历，中间状态标记留在快照里
	assert.Equal(t, 2, api.serverDefaultCount())
	assert.Equal(t, "r-2", s.PendingDefaultResumeID())

	// 网络恢复后，新实例从快照读到标记并收敛不变量
	api.mu.Lock()
	delete(api.failOn, "r-1")
	api.mu.Unlock()

	recovered := NewUserStore(api, repo)
	require.NoError(t, recovered.RecoverPendingDefault(ctx))
	assert.Equal(t, 1, api.serverDefaultCount())
	assert.Empty(t, recovered.PendingDefaultResumeID())
	defaultResume := recovered.DefaultResume()
	require.NotNil(t, defaultResume)
	assert.Equal(t, "r-2", defaultResume.ID)
}

func TestSetDefaultResumePromoteFailureClearsFlag(t *testing.T) {
	api := newFakeUserAPI()
	seedResumes(api)
	s, _ := newUserStoreForTest(api)
	ctx := context.Background()

	require.NoError(t, s.FetchResumes(ctx))

	api.mu.Lock()
	api.failOn["r-2"] = errors.New("服务不可用")
	api.mu.Unlock()

	err := s.SetDefaultResume(ctx, "r-2")
	require.Error(t, err)
	// 提升本身失败时服务端没有任何变化，标记不保留
	assert.Equal(t, 1, api.serverDefaultCount())
	assert.Empty(t, s.PendingDefaultResumeID())
}

func TestSetDefaultResumeNotFound(t *testing.T) {
	api := newFakeUserAPI()
	s, _ := newUserStoreForTest(api)

	err := s.SetDefaultResume(context.Background(), "no-such")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestDuplicateResume(t *testing.T) {
	api := newFakeUserAPI()
	seedResumes(api)
	s, _ := newUserStoreForTest(api)
	ctx := context.Background()

	require.NoError(t, s.FetchResumes(ctx))

	duplicate, err := s.DuplicateResume(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "基础简历（副本）", duplicate.Name)
	assert.False(t, duplicate.IsDefault)
	assert.NotEmpty(t, duplicate.ID)
	assert.NotEqual(t, "r-1", duplicate.ID)
	assert.Len(t, s.Resumes(), 4)

	_, err = s.DuplicateResume(ctx, "no-such")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestUserSnapshotRoundTrip(t *testing.T) {
	api := newFakeUserAPI()
	api.profile = &model.UserProfile{ID: "u-1", Name: "张三"}
	repo := repository.NewMemoryStorageRepository()
	s := NewUserStore(api, repo)
	ctx := context.Background()

	require.NoError(t, s.FetchProfile(ctx))
	remoteOnly := true
	require.NoError(t, s.UpdatePreferences(ctx, model.UserPreferencesPatch{RemoteOnly: &remoteOnly}))

	restored := NewUserStore(api, repo)
	require.NotNil(t, restored.Profile())
	assert.Equal(t, "张三", restored.Profile().Name)
	require.NotNil(t, restored.Preferences())
	assert.True(t, restored.Preferences().RemoteOnly)
	// 简历列表不落盘
	assert.Empty(t, restored.Resumes())
}
