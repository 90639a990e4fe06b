package model

import (
	"time"
)

// User 当前登录用户
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// UserProfile 用户个人资料聚合
type UserProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	Location    string   `json:"location,omitempty"`
	Title       string   `json:"title,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	LinkedinURL string   `json:"linkedinUrl,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
}

// UserProfilePatch 个人资料部分更新
type UserProfilePatch struct {
	Name        *string  `json:"name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	LinkedinURL *string  `json:"linkedinUrl,omitempty"`
	GithubURL   *string  `json:"githubUrl,omitempty"`
}

// UserPreferences 用户偏好设置
type UserPreferences struct {
	PreferredLocations []string `json:"preferredLocations,omitempty"`
	PreferredJobTypes  []string `json:"preferredJobTypes,omitempty"`
	ExpectedSalaryMin  int      `json:"expectedSalaryMin,omitempty"`
	ExpectedSalaryMax  int      `json:"expectedSalaryMax,omitempty"`
	RemoteOnly         bool     `json:"remoteOnly"`
	EmailNotification  bool     `json:"emailNotification"`
	Language           string   `json:"language,omitempty"`
}

// UserPreferencesPatch 偏好设置部分更新
type UserPreferencesPatch struct {
	PreferredLocations []string `json:"preferredLocations,omitempty"`
	PreferredJobTypes  []string `json:"preferredJobTypes,omitempty"`
	ExpectedSalaryMin  *int     `json:"expectedSalaryMin,omitempty"`
	ExpectedSalaryMax  *int     `json:"expectedSalaryMax,omitempty"`
	RemoteOnly         *bool    `json:"remoteOnly,omitempty"`
	EmailNotification  *bool    `json:"emailNotification,omitempty"`
	Language           *string  `json:"language,omitempty"`
}

// AuthResult 登录/注册/刷新接口的返回结果
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
