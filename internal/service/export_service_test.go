package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/dto"
	"schedule-gen/backend/internal/planner"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, ScheduleService, *testRepos) {
	cfg := config.DefaultPlanner()
	repos := newTestRepos()
	repo := repos.toRepository()
	logger := zap.NewNop()
	return NewExportService(&cfg, repo, logger), NewScheduleService(&cfg, repo, logger), repos
}

func mustPlannerCourse(t *testing.T, id, title string, days []string, start, end string, credits int) planner.Course {
	t.Helper()
	c, err := planner.NewCourse(planner.CourseInput{
		ID: id, Title: title, Professor: "P", Days: days,
		StartTime: start, EndTime: end, Credits: credits,
	})
	if err != nil {
		t.Fatalf("构造课程失败: %v", err)
	}
	return c
}

// ── ExportWorkbook ──

func TestExportService_ExportWorkbook_NoSchedule(t *testing.T) {
	svc, _, _ := setupTestExportService()

	_, _, err := svc.ExportWorkbook(context.Background(), "user-1")
	if !errors.Is(err, ErrExportNoSchedule) {
		t.Errorf("期望 ErrExportNoSchedule，实际: %v", err)
	}
}

func TestExportService_ExportWorkbook_Success(t *testing.T) {
	svc, schedules, repos := setupTestExportService()
	repos.seedScenario("user-1")
	if _, err := schedules.Generate(context.Background(), "user-1", &dto.GenerateRequest{}); err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	buf, filename, err := svc.ExportWorkbook(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ExportWorkbook 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际 %s", filename)
	}
	// Excel .xlsx 文件以 PK (0x504B) 开头
	if buf.Len() < 2 || !bytes.Equal(buf.Bytes()[:2], []byte("PK")) {
		t.Error("导出内容不是有效的 xlsx")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("无法读取导出的 Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 6 || sheets[0] != summarySheet || sheets[1] != "Schedule 1" {
		t.Errorf("Sheet 列表不符: %v", sheets)
	}
	name, _ := f.GetCellValue(summarySheet, "B2")
	courses, _ := f.GetCellValue(summarySheet, "E2")
	if name != "Schedule 1" || courses != "A, B" {
		t.Errorf("汇总行不符: %s / %s", name, courses)
	}
}

// ── RenderWorkbook ──

func TestRenderWorkbook_WeekGrid(t *testing.T) {
	cand := planner.Candidate{
		Name: "Schedule 1",
		Courses: []planner.Course{
			mustPlannerCourse(t, "a", "Algebra", []string{"Monday"}, "08:00", "09:30", 3),
			mustPlannerCourse(t, "b", "Biology", []string{"Tuesday"}, "09:00", "09:50", 2),
		},
	}

	buf, err := RenderWorkbook([]planner.Candidate{cand}, 8, 20)
	if err != nil {
		t.Fatalf("RenderWorkbook 失败: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("无法读取 Excel: %v", err)
	}
	defer f.Close()

	// 08:00 起每半小时一行：B2 为周一 08:00
	got, _ := f.GetCellValue("Schedule 1", "B2")
	if got != "Algebra\n08:00-09:30" {
		t.Errorf("周一课程块不符: %q", got)
	}
	slot, _ := f.GetCellValue("Schedule 1", "A4")
	if slot != "09:00" {
		t.Errorf("时间列不符: %q", slot)
	}
	day, _ := f.GetCellValue("Schedule 1", "C1")
	if day != "Tuesday" {
		t.Errorf("表头不符: %q", day)
	}

	merged, err := f.GetMergeCells("Schedule 1")
	if err != nil {
		t.Fatalf("GetMergeCells 失败: %v", err)
	}
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	want := map[string]bool{"B2:B4": true, "C4:C5": true}
	if len(ranges) != len(want) {
		t.Fatalf("合并单元格不符: %v", ranges)
	}
	for _, r := range ranges {
		if !want[r] {
			t.Errorf("意外的合并区域 %s", r)
		}
	}
}

func TestGridWindow_ExtendsToEvents(t *testing.T) {
	events := []planner.Event{
		{Day: planner.Monday, Start: 7*60 + 45, End: 9 * 60},
		{Day: planner.Friday, Start: 19 * 60, End: 21*60 + 10},
	}
	from, to := gridWindow(events, 8, 20)
	if from != 7*60+30 || to != 21*60+30 {
		t.Errorf("期望 [07:30, 21:30)，实际 [%s, %s)", planner.FormatClock(from), planner.FormatClock(to))
	}
}

// ── ICS ──

func TestRenderICS(t *testing.T) {
	opts, err := NewFeedOptions("2026-01-05", "UTC")
	if err != nil {
		t.Fatalf("NewFeedOptions 失败: %v", err)
	}
	cand := planner.Candidate{
		Name: "Schedule 2",
		Courses: []planner.Course{
			mustPlannerCourse(t, "a", "Algebra", []string{"Monday", "Wednesday"}, "08:00", "09:30", 3),
		},
	}

	out := RenderICS(cand, opts, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"X-WR-CALNAME:Schedule 2",
		"SUMMARY:Algebra",
		"DTSTART:20260105T080000Z",
		"DTEND:20260105T093000Z",
		"DTSTART:20260107T080000Z",
		"RRULE:FREQ=WEEKLY",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ICS 缺少 %q", want)
		}
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("期望 2 个事件，实际 %d", n)
	}
}

func TestNewFeedOptions_Invalid(t *testing.T) {
	if _, err := NewFeedOptions("2026-01-06", "UTC"); err == nil {
		t.Error("非周一的起始日期应报错")
	}
	if _, err := NewFeedOptions("2026-01-05", "Mars/Olympus"); err == nil {
		t.Error("无效时区应报错")
	}
}

func TestExportService_ExportICS(t *testing.T) {
	svc, schedules, repos := setupTestExportService()
	repos.seedScenario("user-1")
	resp, _ := schedules.Generate(context.Background(), "user-1", &dto.GenerateRequest{})

	body, filename, err := svc.ExportICS(context.Background(), "user-1", resp.Schedules[0].ID)
	if err != nil {
		t.Fatalf("ExportICS 失败: %v", err)
	}
	if filename != "schedule_1.ics" {
		t.Errorf("文件名不符: %s", filename)
	}
	if n := strings.Count(string(body), "BEGIN:VEVENT"); n != 4 {
		t.Errorf("AB 方案期望 4 个事件，实际 %d", n)
	}

	if _, _, err := svc.ExportICS(context.Background(), "user-1", "missing"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}
