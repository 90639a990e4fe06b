package model

import (
	"fmt"
	"time"
)

// ApplicationStatus 投递状态（状态流转以服务端返回值为准，客户端不做强制校验）
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"   // 待处理
	StatusReviewing ApplicationStatus = "reviewing" // 简历筛选中
	StatusInterview ApplicationStatus = "interview" // 面试中
	StatusRejected  ApplicationStatus = "rejected"  // 已拒绝
	StatusAccepted  ApplicationStatus = "accepted"  // 已录用
)

// statusTransitions 客户端观察到的状态流转图，仅用于界面提示
// pending → reviewing/rejected → interview/rejected → accepted/rejected
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:   {StatusReviewing, StatusRejected},
	StatusReviewing: {StatusInterview, StatusRejected},
	StatusInterview: {StatusAccepted, StatusRejected},
	// accepted 和 rejected 是终态
}

// ParseApplicationStatus 解析状态字符串
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusPending, StatusReviewing, StatusInterview, StatusRejected, StatusAccepted:
		return st, nil
	}
	return "", fmt.Errorf("未知的投递状态: %q", s)
}

// IsStatusTransitionAllowed 判断状态流转在观察图中是否成立
// 注意：服务端才是状态的权威来源，这里只用于前端展示提示
func IsStatusTransitionAllowed(from, to ApplicationStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// JobApplication 投递记录
type JobApplication struct {
	ID            string            `json:"id"`
	JobID         string            `json:"jobId"`
	Status        ApplicationStatus `json:"status"`
	AppliedDate   time.Time         `json:"appliedDate"`
	Notes         string            `json:"notes,omitempty"`
	ResumeID      string            `json:"resumeId,omitempty"`
	CoverLetter   string            `json:"coverLetter,omitempty"`
	InterviewDate *time.Time        `json:"interviewDate,omitempty"`
	Feedback      string            `json:"feedback,omitempty"`
}

// ApplyRequest 投递请求参数
type ApplyRequest struct {
	ResumeID    string `json:"resumeId,omitempty"`
	CoverLetter string `json:"coverLetter,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ApplicationUpdate 投递记录的部分更新（nil 字段不提交）
type ApplicationUpdate struct {
	Status        *ApplicationStatus `json:"status,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	InterviewDate *time.Time         `json:"interviewDate,omitempty"`
	Feedback      *string            `json:"feedback,omitempty"`
}

// ApplicationStats 按状态统计的投递数量（total + 五个状态桶）
type ApplicationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Reviewing int `json:"reviewing"`
	Interview int `json:"interview"`
	Rejected  int `json:"rejected"`
	Accepted  int `json:"accepted"`
}
