package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"schedule-gen/backend/internal/planner"
)

const sampleCourses = `
courses:
  - id: A
    title: Algorithms
    professor: Knuth
    days: [Monday, Wednesday]
    start_time: "08:00"
    end_time: "09:30"
    credits: 4
    priority: true
  - id: B
    title: Biology
    professor: Darwin
    days: [Tuesday, Thursday]
    start_time: "10:00"
    end_time: "11:30"
    credits: 3
  - title: Chemistry
    professor: Curie
    days: [monday]
    start_time: "8:30"
    end_time: "10:00"
    credits: 2
`

func TestParseCourses(t *testing.T) {
	courses, err := parseCourses([]byte(sampleCourses))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("期望 3 门课程, 实际 %d", len(courses))
	}
	if courses[2].ID != "course-3" {
		t.Errorf("缺省 ID 期望 course-3, 实际 %s", courses[2].ID)
	}
	if courses[2].Start != 8*60+30 {
		t.Errorf("期望开始时间 510, 实际 %d", courses[2].Start)
	}
	if !courses[0].Priority || courses[1].Priority {
		t.Error("priority 字段解析错误")
	}
}

func TestParseCourses_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"空文件", "  \n", "为空"},
		{"未知字段", "courses:\n  - title: X\n    room: 101\n", "解析课程清单失败"},
		{"重复 ID", "courses:\n" +
			"  - {id: A, title: X, professor: P, days: [Monday], start_time: '08:00', end_time: '09:00', credits: 1}\n" +
			"  - {id: A, title: Y, professor: P, days: [Friday], start_time: '08:00', end_time: '09:00', credits: 1}\n", "重复"},
		{"时间无效", "courses:\n" +
			"  - {title: X, professor: P, days: [Monday], start_time: '25:00', end_time: '26:00', credits: 1}\n", "第 1 门课程"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCourses([]byte(tt.data))
			if err == nil {
				t.Fatal("期望返回错误")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("错误信息应包含 %q, 实际 %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseCourses_ValidationErrorUnwraps(t *testing.T) {
	data := "courses:\n  - {title: X, professor: P, days: [Sunday], start_time: '08:00', end_time: '09:00', credits: 1}\n"
	_, err := parseCourses([]byte(data))

	var ve *planner.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("期望 *planner.ValidationError, 实际 %v", err)
	}
	if ve.Field != "days" {
		t.Errorf("期望字段 days, 实际 %s", ve.Field)
	}
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.yaml")
	if err := os.WriteFile(path, []byte(sampleCourses), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlanFlags_Generate(t *testing.T) {
	f := planFlags{file: writeSample(t), maxCredits: 18, workers: 2}
	ranked, err := f.generate(context.Background())
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	// A+B, A, B+C, B, C
	want := [][]string{{"A", "B"}, {"A"}, {"B", "course-3"}, {"B"}, {"course-3"}}
	if len(ranked) != len(want) {
		t.Fatalf("期望 %d 个方案, 实际 %d", len(want), len(ranked))
	}
	for i, c := range ranked {
		var ids []string
		for _, course := range c.Courses {
			ids = append(ids, course.ID)
		}
		if strings.Join(ids, ",") != strings.Join(want[i], ",") {
			t.Errorf("方案 %d 期望 %v, 实际 %v", i+1, want[i], ids)
		}
	}
}

func TestWritePlan(t *testing.T) {
	f := planFlags{file: writeSample(t), minCredits: 5, maxCredits: 18}
	ranked, err := f.generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writePlan(&buf, ranked, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"Schedule 1", "Algorithms, Biology", "Wednesday", "08:00-09:30"} {
		if !strings.Contains(out, s) {
			t.Errorf("输出缺少 %q:\n%s", s, out)
		}
	}

	buf.Reset()
	if err := writePlan(&buf, nil, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "没有满足条件") {
		t.Errorf("空结果提示错误: %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	f := planFlags{file: writeSample(t), maxCredits: 4}
	ranked, err := f.generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, ranked); err != nil {
		t.Fatal(err)
	}
	var got []jsonSchedule
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("JSON 无效: %v", err)
	}
	if len(got) == 0 || got[0].Name != "Schedule 1" || got[0].Courses[0].ID != "A" {
		t.Errorf("首个方案错误: %+v", got)
	}
	if got[0].Courses[0].Days[1] != "Wednesday" {
		t.Errorf("上课日错误: %v", got[0].Courses[0].Days)
	}
}
