package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"schedule-gen/backend/internal/planner"
)

// courseFile 课程清单文件格式
//
//	courses:
//	  - id: cs101
//	    title: Algorithms
//	    professor: Knuth
//	    days: [Monday, Wednesday]
//	    start_time: "08:00"
//	    end_time: "09:30"
//	    credits: 4
//	    priority: true
type courseFile struct {
	Courses []courseEntry `yaml:"courses"`
}

type courseEntry struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Professor string   `yaml:"professor"`
	Days      []string `yaml:"days"`
	StartTime string   `yaml:"start_time"`
	EndTime   string   `yaml:"end_time"`
	Credits   int      `yaml:"credits"`
	Priority  bool     `yaml:"priority"`
}

// parseCourses 解析并校验课程清单，缺省 ID 按顺序补为 course-N
func parseCourses(data []byte) ([]planner.Course, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("课程清单为空")
	}

	var file courseFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("解析课程清单失败: %w", err)
	}

	seen := make(map[string]bool, len(file.Courses))
	courses := make([]planner.Course, 0, len(file.Courses))
	for i, e := range file.Courses {
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("course-%d", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("第 %d 门课程: ID %q 重复", i+1, id)
		}
		seen[id] = true

		c, err := planner.NewCourse(planner.CourseInput{
			ID:        id,
			Title:     e.Title,
			Professor: e.Professor,
			Days:      e.Days,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Credits:   e.Credits,
			Priority:  e.Priority,
		})
		if err != nil {
			return nil, fmt.Errorf("第 %d 门课程: %w", i+1, err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func loadCourses(path string) ([]planner.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取课程清单失败: %w", err)
	}
	return parseCourses(data)
}
