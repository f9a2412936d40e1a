package service

import (
	"context"
	"errors"
	"fmt"

	"schedule-gen/backend/internal/model"
	"schedule-gen/backend/internal/repository"
	pkgerrors "schedule-gen/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 "name:"+username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users["name:"+user.Username]; ok {
		return pkgerrors.ErrDuplicate
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	m.users["name:"+user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users["name:"+username]; ok {
		return u, nil
	}
	return nil, pkgerrors.ErrNotFound
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses []*model.Course // 保持插入顺序
	seq     int
	listErr error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.seq++
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses = append(m.courses, course)
	return nil
}

func (m *mockCourseRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.CourseID == id && c.UserID == userID && !c.DeletedAt.Valid {
			return c, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockCourseRepo) ListByUser(_ context.Context, userID string) ([]model.Course, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Course
	for _, c := range m.courses {
		if c.UserID == userID && !c.DeletedAt.Valid {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id, userID string) error {
	for i, c := range m.courses {
		if c.CourseID == id && c.UserID == userID && !c.DeletedAt.Valid {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

// ── Mock ScheduleRepository ──

var errReplaceFailed = errors.New("mock: replace failed")

type mockScheduleRepo struct {
	byUser      map[string][]model.Schedule
	courses     *mockCourseRepo // 用于模拟 Items.Course 预加载
	failReplace bool
	replaced    int
}

func newMockScheduleRepo(courses *mockCourseRepo) *mockScheduleRepo {
	return &mockScheduleRepo{byUser: make(map[string][]model.Schedule), courses: courses}
}

func (m *mockScheduleRepo) preload(s model.Schedule) model.Schedule {
	items := make([]model.ScheduleCourse, len(s.Items))
	for i, it := range s.Items {
		it.Course = nil
		for _, c := range m.courses.courses {
			if c.CourseID == it.CourseID {
				it.Course = c
			}
		}
		items[i] = it
	}
	s.Items = items
	return s
}

func (m *mockScheduleRepo) ListByUser(_ context.Context, userID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.byUser[userID] {
		result = append(result, m.preload(s))
	}
	return result, nil
}

func (m *mockScheduleRepo) GetByIDAndUser(_ context.Context, id, userID string) (*model.Schedule, error) {
	for _, s := range m.byUser[userID] {
		if s.ScheduleID == id {
			out := m.preload(s)
			return &out, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockScheduleRepo) ReplaceByUser(_ context.Context, userID string, schedules []model.Schedule) error {
	if m.failReplace {
		return errReplaceFailed
	}
	m.replaced++
	stored := make([]model.Schedule, len(schedules))
	for i := range schedules {
		if schedules[i].ScheduleID == "" {
			schedules[i].ScheduleID = fmt.Sprintf("sched-%d-%d", m.replaced, i+1)
		}
		schedules[i].UserID = userID
		stored[i] = schedules[i]
		stored[i].Items = append([]model.ScheduleCourse(nil), schedules[i].Items...)
	}
	m.byUser[userID] = stored
	return nil
}

// ── 测试辅助 ──

type testRepos struct {
	user     *mockUserRepo
	course   *mockCourseRepo
	schedule *mockScheduleRepo
}

func newTestRepos() *testRepos {
	courses := newMockCourseRepo()
	return &testRepos{
		user:     newMockUserRepo(),
		course:   courses,
		schedule: newMockScheduleRepo(courses),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:     r.user,
		Course:   r.course,
		Schedule: r.schedule,
	}
}

// seedCourse 直接写入一门课程
func (r *testRepos) seedCourse(userID, title string, days []string, start, end string, credits int, priority bool) *model.Course {
	c := &model.Course{
		UserID:    userID,
		Title:     title,
		Professor: "Prof " + title,
		Days:      days,
		StartTime: start,
		EndTime:   end,
		Credits:   credits,
		Priority:  priority,
	}
	_ = r.course.Create(context.Background(), c)
	return c
}

// seedScenario 经典 A/B/C 场景：
// A 周一/周三 08:00-09:30 4 学分 优先；B 周二/周四 10:00-11:30 3 学分；C 周一 08:30-10:00 2 学分
// A 与 C 冲突，排序结果为 AB, A, BC, B, C
func (r *testRepos) seedScenario(userID string) {
	r.seedCourse(userID, "A", []string{"Monday", "Wednesday"}, "08:00", "09:30", 4, true)
	r.seedCourse(userID, "B", []string{"Tuesday", "Thursday"}, "10:00", "11:30", 3, false)
	r.seedCourse(userID, "C", []string{"Monday"}, "08:30", "10:00", 2, false)
}
