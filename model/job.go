package model

import (
	"time"
)

// Job 职位信息结构体（后端返回的规范职位数据，客户端视为只读）
type Job struct {
	ID               string    `json:"id"`               // 职位ID（平台范围内唯一）
	Title            string    `json:"title"`            // 岗位名称
	Company          string    `json:"company"`          // 公司名字
	Location         string    `json:"location"`         // 岗位地区
	SalaryMin        int       `json:"salaryMin"`        // 薪资下限
	SalaryMax        int       `json:"salaryMax"`        // 薪资上限
	SalaryCurrency   string    `json:"salaryCurrency"`   // 薪资币种
	Description      string    `json:"description"`      // 岗位描述
	Requirements     []string  `json:"requirements"`     // 任职要求
	Skills           []string  `json:"skills"`           // 技能标签
	Platform         string    `json:"platform"`         // 来源平台（boss/zhilian/job51/liepin）
	URL              string    `json:"url"`              // 原始职位链接
	IsRemote         bool      `json:"isRemote"`         // 是否远程
	IsUrgent         bool      `json:"isUrgent"`         // 是否急招
	ViewCount        int       `json:"viewCount"`        // 浏览次数
	ApplicationCount int       `json:"applicationCount"` // 投递次数
	MatchScore       float64   `json:"matchScore,omitempty"` // 匹配度（搜索结果附带）
	PublishedAt      time.Time `json:"publishedAt"`
}

// String 实现 Stringer 接口
func (j *Job) String() string {
	return "【" + j.Company + ", " + j.Title + ", " + j.Location + ", " + j.Platform + "】"
}

// SearchQuery 搜索查询对象（值对象，新查询整体替换或按字段合并）
type SearchQuery struct {
	Keyword       string   `json:"keyword"`
	Location      string   `json:"location"`
	SalaryMin     int      `json:"salaryMin,omitempty"`
	SalaryMax     int      `json:"salaryMax,omitempty"`
	JobType       []string `json:"jobType,omitempty"`
	Experience    string   `json:"experience,omitempty"`
	CompanySize   string   `json:"companySize,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	WorkMode      string   `json:"workMode,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
}

// SearchQueryPatch 查询的部分字段更新（nil 字段表示保持不变）
type SearchQueryPatch struct {
	Keyword       *string
	Location      *string
	SalaryMin     *int
	SalaryMax     *int
	JobType       []string
	Experience    *string
	CompanySize   *string
	Skills        []string
	WorkMode      *string
	PublishedDate *string
	Platforms     []string
}

// SearchFilters 搜索过滤条件（与查询正交的筛选面板状态）
type SearchFilters struct {
	JobTypes         []string `json:"jobTypes,omitempty"`
	ExperienceLevels []string `json:"experienceLevels,omitempty"`
	CompanySizes     []string `json:"companySizes,omitempty"`
	WorkModes        []string `json:"workModes,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	SalaryRange      [2]int   `json:"salaryRange"`
	PublishedDate    string   `json:"publishedDate,omitempty"`
}

// SearchFiltersPatch 过滤条件的部分字段更新
type SearchFiltersPatch struct {
	JobTypes         []string
	ExperienceLevels []string
	CompanySizes     []string
	WorkModes        []string
	Skills           []string
	SalaryRange      *[2]int
	PublishedDate    *string
}

// SearchRequest 一次搜索请求的完整参数（查询+过滤+分页+排序）
type SearchRequest struct {
	Query    SearchQuery
	Filters  SearchFilters
	Page     int
	PageSize int
	SortBy   string
}

// SearchResult 搜索接口返回结果
type SearchResult struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
}

// 排序方式
const (
	SortByRelevance = "relevance"
	SortByDate      = "date"
	SortBySalary    = "salary"
)

// 结果展示模式
const (
	ViewModeList = "list"
	ViewModeCard = "card"
)
