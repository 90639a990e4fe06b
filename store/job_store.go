// store/job_store.go
package store

import (
	"context"
	"sync"

	"job_search_go/model"
	"job_search_go/repository"

	log "github.com/sirupsen/logrus"
)

// 浏览历史上限
const maxViewHistory = 50

// JobAPI 职位相关的后端接口
type JobAPI interface {
	GetJob(ctx context.Context, id string) (*model.Job, error)
	AddFavorite(ctx context.Context, jobID string) error
	RemoveFavorite(ctx context.Context, jobID string) error
	ApplyToJob(ctx context.Context, jobID string, req model.ApplyRequest) (*model.JobApplication, error)
	UpdateApplication(ctx context.Context, id string, update model.ApplicationUpdate) (*model.JobApplication, error)
	ListApplications(ctx context.Context) ([]model.JobApplication, error)
	GetRecommendations(ctx context.Context) ([]model.Job, error)
	GetSimilarJobs(ctx context.Context, jobID string) ([]model.Job, error)
}

// jobSnapshot job-storage 快照的持久化子集
type jobSnapshot struct {
	FavoriteJobs []model.Job           `json:"favoriteJobs"`
	ViewHistory  []model.Job           `json:"viewHistory"`
	Applications []model.JobApplication `json:"applications"`
}

// JobStore 职位状态：详情、收藏、投递记录、浏览历史和推荐缓存
type JobStore struct {
	mu      sync.Mutex
	api     JobAPI
	storage repository.StorageRepository

	currentJob      *model.Job
	favoriteJobs    []model.Job
	applications    []model.JobApplication
	viewHistory     []model.Job
	recommendations []model.Job
	similarJobs     []model.Job
	isLoading       bool
	jobError        string

	// 相似职位的后台拉取句柄：下一次详情加载或 Close 时取消
	similarCancel context.CancelFunc
	similarSeq    uint64
	wg            sync.WaitGroup
}

// NewJobStore 创建职位store并从本地快照恢复收藏/历史/投递记录
func NewJobStore(api JobAPI, storage repository.StorageRepository) *JobStore {
	s := &JobStore{
		api:     api,
		storage: storage,
	}

	var snapshot jobSnapshot
	if loadSnapshot(storage, StorageKeyJob, &snapshot) {
		s.favoriteJobs = snapshot.FavoriteJobs
		s.viewHistory = snapshot.ViewHistory
		s.applications = snapshot.Applications
	}
	return s
}

func (s *JobStore) persist() {
	saveSnapshot(s.storage, StorageKeyJob, jobSnapshot{
		FavoriteJobs: s.favoriteJobs,
		ViewHistory:  s.viewHistory,
		Applications: s.applications,
	})
}

// Close 取消进行中的后台拉取并等待其退出
func (s *JobStore) Close() {
	s.mu.Lock()
	if s.similarCancel != nil {
		s.similarCancel()
		s.similarCancel = nil
	}
	s.similarSeq++
	s.mu.Unlock()
	s.wg.Wait()
}

// FetchJob 获取职位详情
// 成功后写入浏览历史，并在后台拉取相似职位（新的详情加载会取消上一次拉取）
func (s *JobStore) FetchJob(ctx context.Context, id string) error {
	s.mu.Lock()
	s.isLoading = true
	s.jobError = ""
	s.mu.Unlock()

	job, err := s.api.GetJob(ctx, id)

	s.mu.Lock()
	s.isLoading = false
	if err != nil {
		s.jobError = err.Error()
		s.mu.Unlock()
		return err
	}

	s.currentJob = job
	s.addToHistoryLocked(*job)
	s.persist()

	// 后台拉取相似职位
	if s.similarCancel != nil {
		s.similarCancel()
	}
	similarCtx, cancel := context.WithCancel(context.Background())
	s.similarCancel = cancel
	s.similarSeq++
	seq := s.similarSeq
	s.mu.Unlock()

	s.wg.Add(1)
	go s.fetchSimilarBackground(similarCtx, seq, id)
	return nil
}

// fetchSimilarBackground 后台拉取相似职位，被取代的拉取不提交结果
func (s *JobStore) fetchSimilarBackground(ctx context.Context, seq uint64, jobID string) {
	defer s.wg.Done()

	jobs, err := s.api.GetSimilarJobs(ctx, jobID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.similarSeq {
		return
	}
	s.similarCancel = nil
	if err != nil {
		if ctx.Err() != context.Canceled {
			log.Debugf("相似职位拉取失败 jobId=%s: %v", jobID, err)
		}
		return
	}
	s.similarJobs = jobs
}

// AddToFavorites 收藏职位
// 先等后端确认，成功后才写本地列表；失败时原样抛给调用方处理
func (s *JobStore) AddToFavorites(ctx context.Context, job model.Job) error {
	if err := s.api.AddFavorite(ctx, job.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isFavoriteLocked(job.ID) {
		s.favoriteJobs = append(s.favoriteJobs, job)
		s.persist()
	}
	return nil
}

// RemoveFromFavorites 取消收藏
// id 不在收藏列表时本地不变化、不报错
func (s *JobStore) RemoveFromFavorites(ctx context.Context, jobID string) error {
	if err := s.api.RemoveFavorite(ctx, jobID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]model.Job, 0, len(s.favoriteJobs))
	for _, job := range s.favoriteJobs {
		if job.ID != jobID {
			kept = append(kept, job)
		}
	}
	s.favoriteJobs = kept
	s.persist()
	return nil
}

// IsFavorite 是否已收藏
func (s *JobStore) IsFavorite(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFavoriteLocked(jobID)
}

func (s *JobStore) isFavoriteLocked(jobID string) bool {
	for _, job := range s.favoriteJobs {
		if job.ID == jobID {
			return true
		}
	}
	return false
}

// ApplyToJob 投递职位，服务端返回的投递记录追加到本地列表
func (s *JobStore) ApplyToJob(ctx context.Context, jobID string, req model.ApplyRequest) (*model.JobApplication, error) {
	application, err := s.api.ApplyToJob(ctx, jobID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications = append(s.applications, *application)
	s.persist()
	log.Infof("投递成功: jobId=%s applicationId=%s", jobID, application.ID)
	return application, nil
}

// UpdateApplication 更新投递记录
// 服务端返回的完整对象整体替换本地记录（状态以服务端为准）
func (s *JobStore) UpdateApplication(ctx context.Context, id string, update model.ApplicationUpdate) (*model.JobApplication, error) {
	application, err := s.api.UpdateApplication(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ID == id {
			s.applications[i] = *application
			break
		}
	}
	s.persist()
	return application, nil
}

// FetchApplications 拉取投递列表，整体替换本地缓存
func (s *JobStore) FetchApplications(ctx context.Context) error {
	applications, err := s.api.ListApplications(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.jobError = err.Error()
		return err
	}
	s.applications = applications
	s.persist()
	return nil
}

// FetchRecommendations 拉取推荐职位
func (s *JobStore) FetchRecommendations(ctx context.Context) error {
	jobs, err := s.api.GetRecommendations(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.jobError = err.Error()
		return err
	}
	s.recommendations = jobs
	return nil
}

// FetchSimilarJobs 同步拉取相似职位
func (s *JobStore) FetchSimilarJobs(ctx context.Context, jobID string) error {
	jobs, err := s.api.GetSimilarJobs(ctx, jobID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.jobError = err.Error()
		return err
	}
	s.similarJobs = jobs
	return nil
}

// AddToHistory 写入浏览历史：按ID去重、置顶、超出上限截断
func (s *JobStore) AddToHistory(job model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addToHistoryLocked(job)
	s.persist()
}

func (s *JobStore) addToHistoryLocked(job model.Job) {
	kept := make([]model.Job, 0, len(s.viewHistory)+1)
	kept = append(kept, job)
	for _, entry := range s.viewHistory {
		if entry.ID != job.ID {
			kept = append(kept, entry)
		}
	}
	if len(kept) > maxViewHistory {
		kept = kept[:maxViewHistory]
	}
	s.viewHistory = kept
}

// ClearHistory 清空浏览历史
func (s *JobStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewHistory = nil
	s.persist()
}

// GetApplicationStats 按状态统计投递数量（每次调用重新扫描）
func (s *JobStore) GetApplicationStats() model.ApplicationStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.ApplicationStats{Total: len(s.applications)}
	for _, app := range s.applications {
		switch app.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusReviewing:
			stats.Reviewing++
		case model.StatusInterview:
			stats.Interview++
		case model.StatusRejected:
			stats.Rejected++
		case model.StatusAccepted:
			stats.Accepted++
		}
	}
	return stats
}

// ---------- 只读访问 ----------

// CurrentJob 当前职位详情
func (s *JobStore) CurrentJob() *model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentJob
}

// Favorites 收藏列表
func (s *JobStore) Favorites() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.favoriteJobs...)
}

// Applications 投递列表
func (s *JobStore) Applications() []model.JobApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.JobApplication(nil), s.applications...)
}

// ViewHistory 浏览历史（最近的在前）
func (s *JobStore) ViewHistory() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.viewHistory...)
}

// Recommendations 推荐职位缓存
func (s *JobStore) Recommendations() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.recommendations...)
}

// SimilarJobs 相似职位缓存
func (s *JobStore) SimilarJobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Job(nil), s.similarJobs...)
}

// JobError 最近一次读取错误信息
func (s *JobStore) JobError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobError
}
