package planner

// Event 周视图中的一个课程块
type Event struct {
	CourseID string
	Day      Weekday
	Start    int
	End      int
	Title    string
}

// Events 将组合展开为周视图事件：每门课程的每个上课日一条，
// 先按课程在组合中的顺序，再按周一到周五排列。
func Events(c Candidate) []Event {
	var out []Event
	for _, course := range c.Courses {
		for _, day := range course.Days.Days() {
			out = append(out, Event{
				CourseID: course.ID,
				Day:      day,
				Start:    course.Start,
				End:      course.End,
				Title:    course.Title,
			})
		}
	}
	return out
}
