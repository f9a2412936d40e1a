package model

// Course 课程表 — 对应 courses
// 时间以 "HH:MM" 文本存储，星期以英文全称存储
type Course struct {
	CourseID  string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	UserID    string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Title     string      `gorm:"type:varchar(100);not null"                     json:"title"`
	Professor string      `gorm:"type:varchar(100);not null"                     json:"professor"`
	Days      StringArray `gorm:"type:text[];not null"                           json:"days"`
	StartTime string      `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime   string      `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Credits   int         `gorm:"type:smallint;not null"                         json:"credits"`
	Priority  bool        `gorm:"not null;default:false"                         json:"priority"`
	SoftDeleteModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
