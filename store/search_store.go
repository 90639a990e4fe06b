// store/search_store.go
package store

import (
	"context"
	"reflect"
	"sync"

	"job_search_go/model"
	"job_search_go/repository"
	"job_search_go/utils"

	log "github.com/sirupsen/logrus"
)

// 搜索历史上限
const maxSearchHistory = 10

// SearchAPI 搜索相关的后端接口
type SearchAPI interface {
	SearchJobs(ctx context.Context, req model.SearchRequest) (*model.SearchResult, error)
}

// searchSnapshot search-storage 快照的持久化子集
type searchSnapshot struct {
	SearchHistory []model.SearchQuery `json:"searchHistory"`
	ViewMode      string              `json:"viewMode"`
	PageSize      int                 `json:"pageSize"`
}

// SearchStore 搜索状态：当前查询、过滤条件、分页结果缓存和搜索历史
type SearchStore struct {
	mu      sync.Mutex
	api     SearchAPI
	storage repository.StorageRepository

	query        model.SearchQuery
	filters      model.SearchFilters
	results      []model.Job
	totalResults int
	page         int
	pageSize     int
	sortBy       string
	viewMode     string
	quickFilters []string
	history      []model.SearchQuery
	isSearching  bool
	lastError    string

	// 进行中搜索的取消句柄和代次号
	// 新搜索先取消旧搜索；迟到的响应通过代次号判定后直接丢弃
	searchCancel context.CancelFunc
	searchSeq    uint64
}

// NewSearchStore 创建搜索store并从本地快照恢复历史/视图偏好
func NewSearchStore(api SearchAPI, storage repository.StorageRepository) *SearchStore {
	s := &SearchStore{
		api:      api,
		storage:  storage,
		page:     1,
		pageSize: 20,
		sortBy:   model.SortByRelevance,
		viewMode: model.ViewModeList,
	}

	var snapshot searchSnapshot
	if loadSnapshot(storage, StorageKeySearch, &snapshot) {
		s.history = snapshot.SearchHistory
		if snapshot.ViewMode != "" {
			s.viewMode = snapshot.ViewMode
		}
		if snapshot.PageSize > 0 {
			s.pageSize = snapshot.PageSize
		}
	}
	return s
}

func (s *SearchStore) persist() {
	saveSnapshot(s.storage, StorageKeySearch, searchSnapshot{
		SearchHistory: s.history,
		ViewMode:      s.viewMode,
		PageSize:      s.pageSize,
	})
}

// SetQuery 按字段合并到当前查询，不触发搜索、不做校验
func (s *SearchStore) SetQuery(patch model.SearchQueryPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Keyword != nil {
		s.query.Keyword = *patch.Keyword
	}
	if patch.Location != nil {
		s.query.Location = *patch.Location
	}
	if patch.SalaryMin != nil {
		s.query.SalaryMin = *patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		s.query.SalaryMax = *patch.SalaryMax
	}
	if patch.JobType != nil {
		s.query.JobType = patch.JobType
	}
	if patch.Experience != nil {
		s.query.Experience = *patch.Experience
	}
	if patch.CompanySize != nil {
		s.query.CompanySize = *patch.CompanySize
	}
	if patch.Skills != nil {
		s.query.Skills = patch.Skills
	}
	if patch.WorkMode != nil {
		s.query.WorkMode = *patch.WorkMode
	}
	if patch.PublishedDate != nil {
		s.query.PublishedDate = *patch.PublishedDate
	}
	if patch.Platforms != nil {
		s.query.Platforms = patch.Platforms
	}
}

// SetFilters 按字段合并过滤条件
func (s *SearchStore) SetFilters(patch model.SearchFiltersPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.JobTypes != nil {
		s.filters.JobTypes = patch.JobTypes
	}
	if patch.ExperienceLevels != nil {
		s.filters.ExperienceLevels = patch.ExperienceLevels
	}
	if patch.CompanySizes != nil {
		s.filters.CompanySizes = patch.CompanySizes
	}
	if patch.WorkModes != nil {
		s.filters.WorkModes = patch.WorkModes
	}
	if patch.Skills != nil {
		s.filters.Skills = patch.Skills
	}
	if patch.SalaryRange != nil {
		s.filters.SalaryRange = *patch.SalaryRange
	}
	if patch.PublishedDate != nil {
		s.filters.PublishedDate = *patch.PublishedDate
	}
}

// Search 执行搜索
// override 非 nil 时整体替换当前查询；新搜索会取消仍在进行中的上一次搜索
func (s *SearchStore) Search(ctx context.Context, override *model.SearchQuery) error {
	s.mu.Lock()
	if override != nil {
		s.query = *override
	}
	req := model.SearchRequest{
		Query:    s.query,
		Filters:  s.filters,
		Page:     s.page,
		PageSize: s.pageSize,
		SortBy:   s.sortBy,
	}
	searchCtx, seq := s.beginSearchLocked(ctx)
	s.mu.Unlock()

	return s.doSearch(searchCtx, seq, req)
}

// beginSearchLocked 取消上一次搜索并登记新的进行中搜索，须在持锁状态下调用
func (s *SearchStore) beginSearchLocked(ctx context.Context) (context.Context, uint64) {
	if s.searchCancel != nil {
		s.searchCancel()
	}
	searchCtx, cancel := context.WithCancel(ctx)
	s.searchCancel = cancel
	s.searchSeq++
	s.isSearching = true
	s.lastError = ""
	return searchCtx, s.searchSeq
}

// doSearch 发起请求并提交结果
// 只有代次号仍是最新的响应才会提交，被取代的搜索静默退出
func (s *SearchStore) doSearch(ctx context.Context, seq uint64, req model.SearchRequest) error {
	result, err := s.api.SearchJobs(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.searchSeq {
		// 已被新搜索取代，结果与错误都不提交
		return nil
	}
	s.isSearching = false
	s.searchCancel = nil

	if err != nil {
		if ctx.Err() == context.Canceled {
			return nil
		}
		// 失败时保留之前的结果，错误信息供界面展示
		s.lastError = err.Error()
		s.appendHistoryLocked(req.Query)
		s.persist()
		return err
	}

	s.results = result.Jobs
	s.totalResults = result.Total
	s.appendHistoryLocked(req.Query)
	s.persist()
	log.Debugf("搜索完成: keyword=%s 共%d条", req.Query.Keyword, result.Total)
	return nil
}

// appendHistoryLocked 把查询写入搜索历史
// 深度相等去重、新条目置顶、超出上限截断，须在持锁状态下调用
func (s *SearchStore) appendHistoryLocked(query model.SearchQuery) {
	kept := make([]model.SearchQuery, 0, len(s.history)+1)
	kept = append(kept, query)
	for _, entry := range s.history {
		if !reflect.DeepEqual(entry, query) {
			kept = append(kept, entry)
		}
	}
	if len(kept) > maxSearchHistory {
		kept = kept[:maxSearchHistory]
	}
	s.history = kept
}

// SetPage 切换页码并重新搜索，新页码直接进入请求参数
// 结果整页替换，不做追加
func (s *SearchStore) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	s.page = page
	req := model.SearchRequest{
		Query:    s.query,
		Filters:  s.filters,
		Page:     page,
		PageSize: s.pageSize,
		SortBy:   s.sortBy,
	}
	searchCtx, seq := s.beginSearchLocked(ctx)
	s.mu.Unlock()

	return s.doSearch(searchCtx, seq, req)
}

// SetPageSize 切换每页条数并重新搜索（回到第一页）
func (s *SearchStore) SetPageSize(ctx context.Context, pageSize int) error {
	s.mu.Lock()
	s.pageSize = pageSize
	s.page = 1
	req := model.SearchRequest{
		Query:    s.query,
		Filters:  s.filters,
		Page:     1,
		PageSize: pageSize,
		SortBy:   s.sortBy,
	}
	searchCtx, seq := s.beginSearchLocked(ctx)
	s.mu.Unlock()

	return s.doSearch(searchCtx, seq, req)
}

// SetSortBy 切换排序并重新搜索
func (s *SearchStore) SetSortBy(ctx context.Context, sortBy string) error {
	s.mu.Lock()
	s.sortBy = sortBy
	req := model.SearchRequest{
		Query:    s.query,
		Filters:  s.filters,
		Page:     s.page,
		PageSize: s.pageSize,
		SortBy:   sortBy,
	}
	searchCtx, seq := s.beginSearchLocked(ctx)
	s.mu.Unlock()

	return s.doSearch(searchCtx, seq, req)
}

// SetViewMode 切换结果展示模式
func (s *SearchStore) SetViewMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
	s.persist()
}

// ClearSearch 清空结果相关字段，保留查询和过滤条件
func (s *SearchStore) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchCancel != nil {
		s.searchCancel()
		s.searchCancel = nil
	}
	s.searchSeq++
	s.results = nil
	s.totalResults = 0
	s.page = 1
	s.isSearching = false
	s.lastError = ""
}

// AddQuickFilter 添加快捷过滤标签（幂等）
func (s *SearchStore) AddQuickFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !utils.ContainsString(s.quickFilters, tag) {
		s.quickFilters = append(s.quickFilters, tag)
	}
}

// RemoveQuickFilter 移除快捷过滤标签
func (s *SearchStore) RemoveQuickFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quickFilters = utils.RemoveString(s.quickFilters, tag)
}

// ClearQuickFilters 清空快捷过滤标签
func (s *SearchStore) ClearQuickFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quickFilters = nil
}

// ClearSearchHistory 清空搜索历史
func (s *SearchStore) ClearSearchHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.persist()
}

// ---------- 只读访问 ----------

// Results 当前结果页（整页替换语义）
func (s *SearchStore) Results() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// TotalResults 结果总数
func (s *SearchStore) TotalResults() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalResults
}

// Query 当前查询
func (s *SearchStore) Query() model.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Filters 当前过滤条件
func (s *SearchStore) Filters() model.SearchFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Page 当前页码
func (s *SearchStore) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize 每页条数
func (s *SearchStore) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageSize
}

// SortBy 当前排序方式
func (s *SearchStore) SortBy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy
}

// ViewMode 当前展示模式
func (s *SearchStore) ViewMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// QuickFilters 快捷过滤标签
func (s *SearchStore) QuickFilters() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.quickFilters...)
}

// History 搜索历史（最近的在前）
func (s *SearchStore) History() []model.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SearchQuery(nil), s.history...)
}

// IsSearching 是否有搜索进行中
func (s *SearchStore) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSearching
}

// LastError 最近一次搜索错误信息
func (s *SearchStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
