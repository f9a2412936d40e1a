package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/planner"
	"schedule-gen/backend/internal/repository"
	pkgerrors "schedule-gen/backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSchedule   = errors.New("暂无已生成的课表方案")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 渲染只消费 planner.Events 产出的事件列表
//   - Excel：首个 Sheet 为方案汇总，之后每个方案一个周视图 Sheet
//   - iCalendar：单个方案的每周重复事件
//   - 导出以字节返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWorkbook 导出当前用户全部方案为 Excel
	ExportWorkbook(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportICS 导出单个方案为 iCalendar
	ExportICS(ctx context.Context, userID, scheduleID string) ([]byte, string, error)
}

type exportService struct {
	cfg    *config.PlannerConfig
	repo   *repository.Repository
	feed   FeedOptions
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.PlannerConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	feed, err := NewFeedOptions(cfg.ICSWeekStart, cfg.ICSTimezone)
	if err != nil {
		logger.Warn("iCalendar 配置无效，使用默认值", zap.Error(err))
		feed, _ = NewFeedOptions(config.DefaultPlanner().ICSWeekStart, "UTC")
	}
	return &exportService{cfg: cfg, repo: repo, feed: feed, logger: logger}
}

func (s *exportService) ExportWorkbook(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课表方案失败", zap.Error(err))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoSchedule
	}

	candidates := make([]planner.Candidate, 0, len(schedules))
	for i := range schedules {
		cand, err := toCandidate(&schedules[i])
		if err != nil {
			s.logger.Error("方案数据无效", zap.Error(err))
			return nil, "", err
		}
		candidates = append(candidates, cand)
	}

	buf, err := RenderWorkbook(candidates, s.cfg.CalendarStartHour, s.cfg.CalendarEndHour)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("schedules_%s.xlsx", time.Now().UTC().Format("20060102")), nil
}

func (s *exportService) ExportICS(ctx context.Context, userID, scheduleID string) ([]byte, string, error) {
	schedule, err := s.repo.Schedule.GetByIDAndUser(ctx, scheduleID, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, "", ErrScheduleNotFound
		}
		s.logger.Error("查询课表方案失败", zap.Error(err))
		return nil, "", err
	}

	cand, err := toCandidate(schedule)
	if err != nil {
		s.logger.Error("方案数据无效", zap.Error(err))
		return nil, "", err
	}

	body := RenderICS(cand, s.feed, time.Now())
	return []byte(body), fmt.Sprintf("schedule_%d.ics", schedule.Rank), nil
}

// ═══════════════════════════════════════════════════════════
// RenderWorkbook — 周视图 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Summary"：排名 / 名称 / 优先课程数 / 学分 / 课程
//   - 每个方案一个 Sheet（名称即方案名）
//   - 行头：半小时时间格；列头：Monday ~ Friday
//   - 课程块按时间纵向合并单元格
//
// 时间范围取 [startHour, endHour) 与全部课程时间的并集，课程不会被裁掉。

const (
	summarySheet = "Summary"
	slotMinutes  = 30
)

// RenderWorkbook 将排好序的候选课表渲染为 Excel
func RenderWorkbook(candidates []planner.Candidate, startHour, endHour int) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if err := writeSummary(f, styles, candidates); err != nil {
		return nil, err
	}

	for _, cand := range candidates {
		if err := writeWeekGrid(f, styles, cand, startHour, endHour); err != nil {
			return nil, fmt.Errorf("渲染 %s 失败: %w", cand.Name, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

type workbookStyles struct {
	header int
	event  int
	time   int
}

func newWorkbookStyles(f *excelize.File) (*workbookStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	event, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#9BC2E6", Style: 1},
			{Type: "right", Color: "#9BC2E6", Style: 1},
			{Type: "top", Color: "#9BC2E6", Style: 1},
			{Type: "bottom", Color: "#9BC2E6", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	timeCol, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#595959", Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top"},
	})
	if err != nil {
		return nil, err
	}
	return &workbookStyles{header: header, event: event, time: timeCol}, nil
}

func writeSummary(f *excelize.File, st *workbookStyles, candidates []planner.Candidate) error {
	headers := []interface{}{"Rank", "Name", "Priority courses", "Credits", "Courses"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "E1", st.header); err != nil {
		return err
	}
	f.SetColWidth(summarySheet, "A", "A", 8)
	f.SetColWidth(summarySheet, "B", "B", 14)
	f.SetColWidth(summarySheet, "C", "D", 16)
	f.SetColWidth(summarySheet, "E", "E", 60)

	for i, cand := range candidates {
		titles := ""
		for j, c := range cand.Courses {
			if j > 0 {
				titles += ", "
			}
			titles += c.Title
		}
		row := []interface{}{i + 1, cand.Name, cand.PriorityCount, cand.TotalCredits, titles}
		if err := f.SetSheetRow(summarySheet, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeWeekGrid(f *excelize.File, st *workbookStyles, cand planner.Candidate, startHour, endHour int) error {
	sheet := cand.Name
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	events := planner.Events(cand)
	from, to := gridWindow(events, startHour, endHour)
	slots := (to - from) / slotMinutes

	// 表头
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", colName(len(planner.Weekdays())), 20)
	if err := f.SetCellValue(sheet, "A1", "Time"); err != nil {
		return err
	}
	for i, d := range planner.Weekdays() {
		if err := f.SetCellValue(sheet, cell(colName(i+1), 1), d.String()); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cell(colName(len(planner.Weekdays())), 1), st.header); err != nil {
		return err
	}

	// 时间列
	for i := 0; i < slots; i++ {
		if err := f.SetCellValue(sheet, cell("A", i+2), planner.FormatClock(from+i*slotMinutes)); err != nil {
			return err
		}
	}
	if slots > 0 {
		if err := f.SetCellStyle(sheet, "A2", cell("A", slots+1), st.time); err != nil {
			return err
		}
	}

	// 课程块：同一天内组合无冲突，按开始时间单调，只需避免取整后与上一块重叠
	lastRow := make(map[planner.Weekday]int)
	for _, e := range sortedByDayStart(events) {
		top := 2 + (e.Start-from)/slotMinutes
		bottom := 1 + (e.End-from+slotMinutes-1)/slotMinutes
		if top <= lastRow[e.Day] {
			top = lastRow[e.Day] + 1
		}
		if bottom < top {
			bottom = top
		}
		lastRow[e.Day] = bottom

		col := colName(int(e.Day) + 1)
		text := fmt.Sprintf("%s\n%s-%s", e.Title, planner.FormatClock(e.Start), planner.FormatClock(e.End))
		if err := f.SetCellValue(sheet, cell(col, top), text); err != nil {
			return err
		}
		if bottom > top {
			if err := f.MergeCell(sheet, cell(col, top), cell(col, bottom)); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, cell(col, top), cell(col, bottom), st.event); err != nil {
			return err
		}
	}
	return nil
}

// gridWindow 返回按半小时对齐的 [from, to) 分钟区间
func gridWindow(events []planner.Event, startHour, endHour int) (int, int) {
	from, to := startHour*60, endHour*60
	for _, e := range events {
		if e.Start < from {
			from = e.Start
		}
		if e.End > to {
			to = e.End
		}
	}
	from -= from % slotMinutes
	if r := to % slotMinutes; r != 0 {
		to += slotMinutes - r
	}
	if to < from {
		to = from
	}
	return from, to
}

// sortedByDayStart 按星期、开始时间排序
func sortedByDayStart(events []planner.Event) []planner.Event {
	out := append([]planner.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
