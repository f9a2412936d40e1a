package planner

import (
	"strconv"
	"strings"
)

// Weekday 上课日，仅周一至周五
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Weekdays 按周一到周五的顺序返回全部上课日
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// ParseWeekday 解析 "Monday".."Friday"（大小写不敏感）
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Weekday(i), nil
		}
	}
	return 0, invalid("days", "%q 不是有效的上课日（Monday-Friday）", s)
}

// DaySet 上课日集合（位图）
type DaySet uint8

// NewDaySet 由上课日列表构造集合，重复项自动合并
func NewDaySet(days ...Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Has 是否包含某天
func (s DaySet) Has(d Weekday) bool { return s&(1<<uint(d)) != 0 }

// Intersects 两个集合是否有公共上课日
func (s DaySet) Intersects(o DaySet) bool { return s&o != 0 }

// Days 按周一到周五的顺序展开
func (s DaySet) Days() []Weekday {
	var out []Weekday
	for _, d := range Weekdays() {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Course 参与排课的课程（只读输入）
type Course struct {
	ID        string
	Title     string
	Professor string
	Days      DaySet
	Start     int // 当天分钟数
	End       int
	Credits   int
	Priority  bool
}

// CourseInput 未经校验的课程字段（来自存储或请求）
type CourseInput struct {
	ID        string
	Title     string
	Professor string
	Days      []string
	StartTime string
	EndTime   string
	Credits   int
	Priority  bool
}

// NewCourse 校验并构造 Course，任何字段违反约束都返回 *ValidationError
func NewCourse(in CourseInput) (Course, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Course{}, invalid("title", "不能为空")
	}
	if strings.TrimSpace(in.Professor) == "" {
		return Course{}, invalid("professor", "不能为空")
	}
	if len(in.Days) == 0 {
		return Course{}, invalid("days", "至少选择一天")
	}

	var days DaySet
	for _, name := range in.Days {
		d, err := ParseWeekday(name)
		if err != nil {
			return Course{}, err
		}
		days |= NewDaySet(d)
	}

	start, err := ParseClock(in.StartTime)
	if err != nil {
		return Course{}, &ValidationError{Field: "start_time", Reason: err.(*ValidationError).Reason}
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return Course{}, &ValidationError{Field: "end_time", Reason: err.(*ValidationError).Reason}
	}
	if start >= end {
		return Course{}, invalid("end_time", "结束时间 %s 必须晚于开始时间 %s", in.EndTime, in.StartTime)
	}
	if in.Credits <= 0 {
		return Course{}, invalid("credits", "学分必须大于 0，实际 %d", in.Credits)
	}

	return Course{
		ID:        in.ID,
		Title:     in.Title,
		Professor: in.Professor,
		Days:      days,
		Start:     start,
		End:       end,
		Credits:   in.Credits,
		Priority:  in.Priority,
	}, nil
}
