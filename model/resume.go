package model

import (
	"time"
)

// Resume 简历文档
// 不变量：同一用户的简历集合中最多只有一份 IsDefault=true
type Resume struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	IsDefault      bool             `json:"isDefault"`
	Summary        string           `json:"summary,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	WorkExperience []WorkExperience `json:"workExperience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	CreatedAt      time.Time        `json:"createdAt,omitempty"`
	UpdatedAt      time.Time        `json:"updatedAt,omitempty"`
}

// WorkExperience 工作经历条目
type WorkExperience struct {
	ID          string     `json:"id,omitempty"` // 表单编辑阶段由客户端临时生成
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"` // nil 表示至今
	Description string     `json:"description,omitempty"`
}

// Education 教育经历条目
type Education struct {
	ID        string     `json:"id,omitempty"`
	School    string     `json:"school"`
	Degree    string     `json:"degree"`
	Major     string     `json:"major,omitempty"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ResumePatch 简历部分更新
type ResumePatch struct {
	Name      *string `json:"name,omitempty"`
	IsDefault *bool   `json:"isDefault,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}
