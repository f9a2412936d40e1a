package dto

// ── 认证模块响应 ──

// TokenResponse Token 响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// ── 课程模块响应 ──

// CourseResponse 课程响应
type CourseResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Professor string   `json:"professor"`
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Credits   int      `json:"credits"`
	Priority  bool     `json:"priority"`
	Deleted   bool     `json:"deleted,omitempty"` // 方案内课程已被删除
}
