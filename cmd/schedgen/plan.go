package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/planner"
)

// planFlags plan 与 export 共用的生成参数
type planFlags struct {
	file       string
	minCredits int
	maxCredits int
	maxCourses int
	workers    int
}

func (f *planFlags) register(cmd *cobra.Command) {
	def := config.DefaultPlanner()
	cmd.Flags().StringVarP(&f.file, "file", "f", "courses.yaml", "课程清单 YAML 文件")
	cmd.Flags().IntVar(&f.minCredits, "min", def.DefaultMinCredits, "最低总学分")
	cmd.Flags().IntVar(&f.maxCredits, "max", def.DefaultMaxCredits, "最高总学分")
	cmd.Flags().IntVar(&f.maxCourses, "max-courses", def.MaxCourses, "参与枚举的课程数上限，0 表示不限")
	cmd.Flags().IntVar(&f.workers, "workers", def.Workers, "并行枚举协程数")
}

// generate 读取课程清单并返回排好序的方案
func (f *planFlags) generate(ctx context.Context) ([]planner.Candidate, error) {
	courses, err := loadCourses(f.file)
	if err != nil {
		return nil, err
	}
	p := planner.New(planner.Options{MaxCourses: f.maxCourses, Workers: f.workers})
	return p.Plan(ctx, courses, f.minCredits, f.maxCredits)
}

var (
	planOpts   planFlags
	planEvents bool
	planJSON   bool
	planLimit  int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "生成并打印课表方案",
	Example: `  schedgen plan -f courses.yaml --min 12 --max 18
  schedgen plan -f courses.yaml --events --limit 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ranked, err := planOpts.generate(cmd.Context())
		if err != nil {
			return err
		}
		if planLimit > 0 && len(ranked) > planLimit {
			ranked = ranked[:planLimit]
		}
		if planJSON {
			return writeJSON(cmd.OutOrStdout(), ranked)
		}
		return writePlan(cmd.OutOrStdout(), ranked, planEvents)
	},
}

func init() {
	planOpts.register(planCmd)
	planCmd.Flags().BoolVar(&planEvents, "events", false, "同时打印每个方案的周视图事件")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "以 JSON 输出")
	planCmd.Flags().IntVar(&planLimit, "limit", 0, "只输出前 N 个方案，0 表示全部")
}

// writePlan 以表格形式输出方案
func writePlan(w io.Writer, ranked []planner.Candidate, withEvents bool) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "没有满足条件的课表方案")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "方案\t优先课程\t总学分\t课程")
	for _, c := range ranked {
		titles := make([]string, len(c.Courses))
		for i, course := range c.Courses {
			titles[i] = course.Title
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.Name, c.PriorityCount, c.TotalCredits, strings.Join(titles, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !withEvents {
		return nil
	}
	for _, c := range ranked {
		fmt.Fprintf(w, "\n%s\n", c.Name)
		for _, e := range planner.Events(c) {
			fmt.Fprintf(w, "  %-9s %s-%s  %s\n", e.Day, planner.FormatClock(e.Start), planner.FormatClock(e.End), e.Title)
		}
	}
	return nil
}

type jsonCourse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Professor string   `json:"professor"`
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Credits   int      `json:"credits"`
	Priority  bool     `json:"priority"`
}

type jsonSchedule struct {
	Name          string       `json:"name"`
	PriorityCount int          `json:"priority_count"`
	TotalCredits  int          `json:"total_credits"`
	Courses       []jsonCourse `json:"courses"`
}

func writeJSON(w io.Writer, ranked []planner.Candidate) error {
	out := make([]jsonSchedule, 0, len(ranked))
	for _, c := range ranked {
		s := jsonSchedule{Name: c.Name, PriorityCount: c.PriorityCount, TotalCredits: c.TotalCredits}
		for _, course := range c.Courses {
			days := make([]string, 0, 5)
			for _, d := range course.Days.Days() {
				days = append(days, d.String())
			}
			s.Courses = append(s.Courses, jsonCourse{
				ID:        course.ID,
				Title:     course.Title,
				Professor: course.Professor,
				Days:      days,
				StartTime: planner.FormatClock(course.Start),
				EndTime:   planner.FormatClock(course.End),
				Credits:   course.Credits,
				Priority:  course.Priority,
			})
		}
		out = append(out, s)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
