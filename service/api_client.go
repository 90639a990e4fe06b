// service/api_client.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"job_search_go/model"

	log "github.com/sirupsen/logrus"
)

// DefaultErrorMessage 后端错误信息不可用时的兜底提示
const DefaultErrorMessage = "请求失败，请稍后重试"

// ApiError 后端返回的非2xx错误
// Message 取响应体的 message 字段，取不到时使用兜底提示
type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

// TokenProvider 提供当前的访问令牌（空串表示未登录）
type TokenProvider func() string

// ApiClient 后端REST接口客户端
type ApiClient struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider TokenProvider
}

// NewApiClient 创建接口客户端
func NewApiClient(baseURL string, timeout time.Duration, tokenProvider TokenProvider) *ApiClient {
	if tokenProvider == nil {
		tokenProvider = func() string { return "" }
	}
	return &ApiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokenProvider: tokenProvider,
	}
}

// SetTokenProvider 替换令牌提供者（认证store初始化后注入）
func (c *ApiClient) SetTokenProvider(p TokenProvider) {
	if p != nil {
		c.tokenProvider = p
	}
}

// doRequest 发送请求并解析JSON响应
// out 为 nil 时忽略响应体；query 为 nil 时不追加查询参数
func (c *ApiClient) doRequest(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求体失败: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("创建HTTP请求失败: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokenProvider(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseApiError(resp.StatusCode, respData)
	}

	if out != nil && len(respData) > 0 {
		if err := json.Unmarshal(respData, out); err != nil {
			return fmt.Errorf("解析响应失败: %v", err)
		}
	}
	return nil
}

// parseApiError 从错误响应体中提取 message 字段
func parseApiError(status int, body []byte) *ApiError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		log.Debugf("错误响应体解析失败 status=%d body=%s", status, string(body))
		return &ApiError{Status: status, Message: DefaultErrorMessage}
	}
	return &ApiError{Status: status, Message: payload.Message}
}

// ---------- 认证 ----------

// Login 登录
func (c *ApiClient) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result model.AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register 注册
func (c *ApiClient) Register(ctx context.Context, email, username, password string) (*model.AuthResult, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var result model.AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RefreshToken 刷新令牌
func (c *ApiClient) RefreshToken(ctx context.Context) (*model.AuthResult, error) {
	var result model.AuthResult
	if err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ---------- 职位 ----------

// GetJob 获取职位详情
func (c *ApiClient) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	if err := c.doRequest(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SearchJobs 搜索职位
func (c *ApiClient) SearchJobs(ctx context.Context, req model.SearchRequest) (*model.SearchResult, error) {
	var result model.SearchResult
	err := c.doRequest(ctx, http.MethodGet, "/jobs/search", buildSearchParams(req), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// buildSearchParams 构建搜索查询参数，零值字段一律跳过
func buildSearchParams(req model.SearchRequest) url.Values {
	params := url.Values{}

	appendParam(params, "keyword", req.Query.Keyword)
	appendParam(params, "location", req.Query.Location)
	if req.Query.SalaryMin > 0 {
		params.Set("salaryMin", strconv.Itoa(req.Query.SalaryMin))
	}
	if req.Query.SalaryMax > 0 {
		params.Set("salaryMax", strconv.Itoa(req.Query.SalaryMax))
	}
	appendListParam(params, "jobType", req.Query.JobType)
	appendParam(params, "experience", req.Query.Experience)
	appendParam(params, "companySize", req.Query.CompanySize)
	appendListParam(params, "skills", req.Query.Skills)
	appendParam(params, "workMode", req.Query.WorkMode)
	appendParam(params, "publishedDate", req.Query.PublishedDate)
	appendListParam(params, "platforms", req.Query.Platforms)

	appendListParam(params, "filterJobTypes", req.Filters.JobTypes)
	appendListParam(params, "filterExperienceLevels", req.Filters.ExperienceLevels)
	appendListParam(params, "filterCompanySizes", req.Filters.CompanySizes)
	appendListParam(params, "filterWorkModes", req.Filters.WorkModes)
	appendListParam(params, "filterSkills", req.Filters.Skills)
	if req.Filters.SalaryRange[0] > 0 || req.Filters.SalaryRange[1] > 0 {
		params.Set("salaryRange", strconv.Itoa(req.Filters.SalaryRange[0])+","+strconv.Itoa(req.Filters.SalaryRange[1]))
	}
	appendParam(params, "filterPublishedDate", req.Filters.PublishedDate)

	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(req.PageSize))
	}
	appendParam(params, "sortBy", req.SortBy)

	return params
}

// appendParam 追加参数（空值跳过）
func appendParam(params url.Values, name, value string) {
	if value == "" {
		return
	}
	params.Set(name, value)
}

// appendListParam 追加列表参数（空列表跳过，逗号拼接）
func appendListParam(params url.Values, name string, values []string) {
	if len(values) == 0 {
		return
	}
	params.Set(name, strings.Join(values, ","))
}

// AddFavorite 收藏职位
func (c *ApiClient) AddFavorite(ctx context.Context, jobID string) error {
	return c.doRequest(ctx, http.MethodPost, "/jobs/"+url.PathEscape(jobID)+"/favorite", nil, nil, nil)
}

// RemoveFavorite 取消收藏
func (c *ApiClient) RemoveFavorite(ctx context.Context, jobID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(jobID)+"/favorite", nil, nil, nil)
}

// ApplyToJob 投递职位
func (c *ApiClient) ApplyToJob(ctx context.Context, jobID string, req model.ApplyRequest) (*model.JobApplication, error) {
	var application model.JobApplication
	err := c.doRequest(ctx, http.MethodPost, "/jobs/"+url.PathEscape(jobID)+"/apply", nil, req, &application)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// UpdateApplication 更新投递记录
func (c *ApiClient) UpdateApplication(ctx context.Context, id string, update model.ApplicationUpdate) (*model.JobApplication, error) {
	var application model.JobApplication
	err := c.doRequest(ctx, http.MethodPatch, "/applications/"+url.PathEscape(id), nil, update, &application)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// ListApplications 获取投递列表
func (c *ApiClient) ListApplications(ctx context.Context) ([]model.JobApplication, error) {
	var applications []model.JobApplication
	if err := c.doRequest(ctx, http.MethodGet, "/applications", nil, nil, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// GetRecommendations 获取推荐职位
func (c *ApiClient) GetRecommendations(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.doRequest(ctx, http.MethodGet, "/jobs/recommendations", nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetSimilarJobs 获取相似职位
func (c *ApiClient) GetSimilarJobs(ctx context.Context, jobID string) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.doRequest(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID)+"/similar", nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ---------- 用户 ----------

// GetProfile 获取个人资料
func (c *ApiClient) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.doRequest(ctx, http.MethodGet, "/user/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile 更新个人资料
func (c *ApiClient) UpdateProfile(ctx context.Context, patch model.UserProfilePatch) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.doRequest(ctx, http.MethodPatch, "/user/profile", nil, patch, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListResumes 获取简历列表
func (c *ApiClient) ListResumes(ctx context.Context) ([]model.Resume, error) {
	var resumes []model.Resume
	if err := c.doRequest(ctx, http.MethodGet, "/user/resumes", nil, nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// CreateResume 新建简历
func (c *ApiClient) CreateResume(ctx context.Context, resume model.Resume) (*model.Resume, error) {
	var created model.Resume
	if err := c.doRequest(ctx, http.MethodPost, "/user/resumes", nil, resume, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateResume 更新简历
func (c *ApiClient) UpdateResume(ctx context.Context, id string, patch model.ResumePatch) (*model.Resume, error) {
	var updated model.Resume
	if err := c.doRequest(ctx, http.MethodPatch, "/user/resumes/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteResume 删除简历
func (c *ApiClient) DeleteResume(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/user/resumes/"+url.PathEscape(id), nil, nil, nil)
}

// GetPreferences 获取偏好设置
func (c *ApiClient) GetPreferences(ctx context.Context) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := c.doRequest(ctx, http.MethodGet, "/user/preferences", nil, nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences 更新偏好设置
func (c *ApiClient) UpdatePreferences(ctx context.Context, patch model.UserPreferencesPatch) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := c.doRequest(ctx, http.MethodPatch, "/user/preferences", nil, patch, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Health 后端健康检查
func (c *ApiClient) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/health", nil, nil, nil)
}
