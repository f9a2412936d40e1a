package service

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"schedule-gen/backend/internal/planner"
)

// ── iCalendar 导出 ──────────────────────────────────────────
//
// 每门课程的每个上课日生成一个 VEVENT：
//   - DTSTART/DTEND 落在 WeekStart 所在周的对应星期
//   - RRULE:FREQ=WEEKLY 表示每周重复
//   - UID 由事件序号、课程 ID 与星期构成，同一方案内唯一
// ─────────────────────────────────────────────────────────────

const icsProductID = "-//schedule-gen//Course Schedule//EN"

// FeedOptions iCalendar 导出参数
type FeedOptions struct {
	// WeekStart 首个上课周的周一（零点）
	WeekStart time.Time
	Location  *time.Location
}

// NewFeedOptions 解析 "2006-01-02" 格式的周一日期与 IANA 时区
func NewFeedOptions(weekStart, timezone string) (FeedOptions, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return FeedOptions{}, fmt.Errorf("无效的时区 %q: %w", timezone, err)
	}
	day, err := time.ParseInLocation("2006-01-02", weekStart, loc)
	if err != nil {
		return FeedOptions{}, fmt.Errorf("无效的起始日期 %q: %w", weekStart, err)
	}
	if day.Weekday() != time.Monday {
		return FeedOptions{}, fmt.Errorf("起始日期 %s 不是周一", weekStart)
	}
	return FeedOptions{WeekStart: day, Location: loc}, nil
}

// RenderICS 将单个方案渲染为 iCalendar 文本
func RenderICS(cand planner.Candidate, opts FeedOptions, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(cand.Name)
	cal.SetXWRTimezone(opts.Location.String())

	for i, e := range planner.Events(cand) {
		day := opts.WeekStart.AddDate(0, 0, int(e.Day))
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, opts.Location).
			Add(time.Duration(e.Start) * time.Minute)
		end := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, opts.Location).
			Add(time.Duration(e.End) * time.Minute)

		uid := fmt.Sprintf("%d-%s-%s@schedule-gen", i, e.CourseID, strings.ToLower(e.Day.String()))
		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(e.Title)
		event.SetDescription(cand.Name)
		event.AddRrule("FREQ=WEEKLY")
	}

	return cal.Serialize()
}
