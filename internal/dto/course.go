package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 添加课程请求
// 字段格式（星期名称、HH:MM 时间、学分）由 planner.NewCourse 统一校验
type CreateCourseRequest struct {
	Title     string   `json:"title"      binding:"required,max=100"`
	Professor string   `json:"professor"  binding:"required,max=100"`
	Days      []string `json:"days"       binding:"required,min=1,max=5"`
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time"   binding:"required"`
	Credits   int      `json:"credits"`
	Priority  bool     `json:"priority"`
}
