package model

// Schedule 生成的课表方案 — 对应 schedules
// Rank 为排序后的位置（从 1 开始），Name 为 "Schedule N"
type Schedule struct {
	ScheduleID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	UserID        string `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Name          string `gorm:"type:varchar(50);not null"                      json:"name"`
	Rank          int    `gorm:"not null"                                       json:"rank"`
	PriorityCount int    `gorm:"not null;default:0"                             json:"priority_count"`
	TotalCredits  int    `gorm:"not null;default:0"                             json:"total_credits"`
	BaseModel

	// 关联
	Items []ScheduleCourse `gorm:"foreignKey:ScheduleID;references:ScheduleID" json:"items,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// ScheduleCourse 课表方案与课程的关联 — 对应 schedule_courses
// Position 保留课程在方案中的枚举顺序
type ScheduleCourse struct {
	ScheduleID string `gorm:"type:uuid;primaryKey" json:"schedule_id"`
	CourseID   string `gorm:"type:uuid;primaryKey" json:"course_id"`
	Position   int    `gorm:"type:smallint;not null" json:"position"`

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (ScheduleCourse) TableName() string { return "schedule_courses" }
