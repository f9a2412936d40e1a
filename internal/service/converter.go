package service

import (
	"fmt"
	"time"

	"schedule-gen/backend/internal/dto"
	"schedule-gen/backend/internal/model"
	"schedule-gen/backend/internal/planner"
)

// ── 模型转换 ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	days := []string(c.Days)
	if days == nil {
		days = []string{}
	}
	return dto.CourseResponse{
		ID:        c.CourseID,
		Title:     c.Title,
		Professor: c.Professor,
		Days:      days,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Credits:   c.Credits,
		Priority:  c.Priority,
		Deleted:   c.DeletedAt.Valid,
	}
}

// toPlannerCourse 存储记录 → 排课输入，重新走一遍字段校验
func toPlannerCourse(c *model.Course) (planner.Course, error) {
	return planner.NewCourse(planner.CourseInput{
		ID:        c.CourseID,
		Title:     c.Title,
		Professor: c.Professor,
		Days:      c.Days,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Credits:   c.Credits,
		Priority:  c.Priority,
	})
}

// fromPlannerCourse 规范化后的课程字段写回存储模型
func fromPlannerCourse(userID string, c planner.Course) *model.Course {
	days := make(model.StringArray, 0, 5)
	for _, d := range c.Days.Days() {
		days = append(days, d.String())
	}
	return &model.Course{
		UserID:    userID,
		Title:     c.Title,
		Professor: c.Professor,
		Days:      days,
		StartTime: planner.FormatClock(c.Start),
		EndTime:   planner.FormatClock(c.End),
		Credits:   c.Credits,
		Priority:  c.Priority,
	}
}

// toScheduleModels 排好序的候选课表 → 待持久化的方案，Rank 从 1 开始
func toScheduleModels(ranked []planner.Candidate) []model.Schedule {
	out := make([]model.Schedule, 0, len(ranked))
	for i, cand := range ranked {
		items := make([]model.ScheduleCourse, 0, len(cand.Courses))
		for pos, c := range cand.Courses {
			items = append(items, model.ScheduleCourse{CourseID: c.ID, Position: pos})
		}
		out = append(out, model.Schedule{
			Name:          cand.Name,
			Rank:          i + 1,
			PriorityCount: cand.PriorityCount,
			TotalCredits:  cand.TotalCredits,
			Items:         items,
		})
	}
	return out
}

func toScheduleResponse(s *model.Schedule) dto.ScheduleResponse {
	courses := make([]dto.CourseResponse, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Course == nil {
			continue
		}
		courses = append(courses, toCourseResponse(it.Course))
	}
	return dto.ScheduleResponse{
		ID:            s.ScheduleID,
		Name:          s.Name,
		Rank:          s.Rank,
		PriorityCount: s.PriorityCount,
		TotalCredits:  s.TotalCredits,
		Courses:       courses,
		CreatedAt:     formatTime(s.CreatedAt),
	}
}

// toCandidate 已持久化的方案 → 渲染输入
func toCandidate(s *model.Schedule) (planner.Candidate, error) {
	cand := planner.Candidate{
		Name:          s.Name,
		TotalCredits:  s.TotalCredits,
		PriorityCount: s.PriorityCount,
		Courses:       make([]planner.Course, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		if it.Course == nil {
			continue
		}
		c, err := toPlannerCourse(it.Course)
		if err != nil {
			return planner.Candidate{}, fmt.Errorf("方案 %s 中的课程 %s 数据无效: %w", s.ScheduleID, it.CourseID, err)
		}
		cand.Courses = append(cand.Courses, c)
	}
	return cand, nil
}

func toEventResponses(events []planner.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.EventResponse{
			CourseID:  e.CourseID,
			Title:     e.Title,
			Day:       e.Day.String(),
			StartTime: planner.FormatClock(e.Start),
			EndTime:   planner.FormatClock(e.End),
		})
	}
	return out
}
