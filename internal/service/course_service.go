package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"schedule-gen/backend/internal/dto"
	"schedule-gen/backend/internal/planner"
	"schedule-gen/backend/internal/repository"
	pkgerrors "schedule-gen/backend/pkg/errors"
)

// ── 课程模块业务错误 ──

var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程业务接口
// 字段校验失败时返回 *planner.ValidationError
type CourseService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	List(ctx context.Context, userID string) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, userID, courseID string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	c, err := planner.NewCourse(planner.CourseInput{
		Title:     req.Title,
		Professor: req.Professor,
		Days:      req.Days,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Credits:   req.Credits,
		Priority:  req.Priority,
	})
	if err != nil {
		return nil, err
	}

	record := fromPlannerCourse(userID, c)
	if err := s.repo.Course.Create(ctx, record); err != nil {
		s.logger.Error("创建课程失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(record)
	return &resp, nil
}

func (s *courseService) List(ctx context.Context, userID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseResponse(&courses[i]))
	}
	return out, nil
}

func (s *courseService) Delete(ctx context.Context, userID, courseID string) error {
	if err := s.repo.Course.Delete(ctx, courseID, userID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("删除课程失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}
