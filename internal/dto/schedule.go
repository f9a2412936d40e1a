package dto

// ── 课表生成模块 DTO ──

// GenerateRequest 生成课表请求
// 学分上下限缺省时使用配置中的默认值
type GenerateRequest struct {
	MinCredits *int `json:"min_credits"`
	MaxCredits *int `json:"max_credits"`
}

// ── 响应 ──

// GenerateResponse 生成课表响应
type GenerateResponse struct {
	Total     int                `json:"total"`
	Schedules []ScheduleResponse `json:"schedules"`
}

// ScheduleResponse 课表方案响应
type ScheduleResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Rank          int              `json:"rank"`
	PriorityCount int              `json:"priority_count"`
	TotalCredits  int              `json:"total_credits"`
	Courses       []CourseResponse `json:"courses"`
	CreatedAt     string           `json:"created_at"`
}

// EventResponse 日历事件（每门课程每个上课日一条）
type EventResponse struct {
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduleEventsResponse 课表方案的日历事件列表
type ScheduleEventsResponse struct {
	ScheduleID string          `json:"schedule_id"`
	Name       string          `json:"name"`
	Events     []EventResponse `json:"events"`
}
