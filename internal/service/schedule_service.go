package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/dto"
	"schedule-gen/backend/internal/model"
	"schedule-gen/backend/internal/planner"
	"schedule-gen/backend/internal/repository"
	pkgerrors "schedule-gen/backend/pkg/errors"
	"schedule-gen/backend/pkg/logger"
)

// ── 课表生成模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("课表方案不存在")
	ErrGenerateTimeout  = errors.New("课表生成超时，请减少课程数量后重试")
)

// ScheduleService 课表生成业务接口
type ScheduleService interface {
	// Generate 重新生成当前用户的全部课表方案并替换旧方案
	Generate(ctx context.Context, userID string, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	// List 按排名返回已生成的方案
	List(ctx context.Context, userID string) ([]dto.ScheduleResponse, error)
	// Events 返回方案的周视图事件列表
	Events(ctx context.Context, userID, scheduleID string) (*dto.ScheduleEventsResponse, error)
}

type scheduleService struct {
	cfg     *config.PlannerConfig
	repo    *repository.Repository
	planner *planner.Planner
	logger  *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.PlannerConfig, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		cfg:  cfg,
		repo: repo,
		planner: planner.New(planner.Options{
			MaxCourses: cfg.MaxCourses,
			Workers:    cfg.Workers,
		}),
		logger: logger,
	}
}

// ════════════════════════════════════════════════════════════
// Generate — 读取课程 → 枚举排序 → 事务替换
// ════════════════════════════════════════════════════════════
//
// 枚举与排序全部在内存中完成，任何失败都不会触碰已有方案；
// 持久化阶段失败时事务回滚，旧方案保持不变。

func (s *scheduleService) Generate(ctx context.Context, userID string, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	log := logger.FromContext(ctx, s.logger)
	started := time.Now()

	minCredits, maxCredits := s.cfg.DefaultMinCredits, s.cfg.DefaultMaxCredits
	if req.MinCredits != nil {
		minCredits = *req.MinCredits
	}
	if req.MaxCredits != nil {
		maxCredits = *req.MaxCredits
	}

	// 1. 读取并校验课程
	records, err := s.repo.Course.ListByUser(ctx, userID)
	if err != nil {
		log.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]*model.Course, len(records))
	courses := make([]planner.Course, 0, len(records))
	for i := range records {
		c, err := toPlannerCourse(&records[i])
		if err != nil {
			log.Warn("课程数据校验失败", zap.String("course_id", records[i].CourseID), zap.Error(err))
			return nil, err
		}
		byID[c.ID] = &records[i]
		courses = append(courses, c)
	}

	// 2. 枚举 + 排序
	planCtx := ctx
	if s.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		planCtx, cancel = context.WithTimeout(ctx, s.cfg.GenerateTimeout)
		defer cancel()
	}
	ranked, err := s.planner.Plan(planCtx, courses, minCredits, maxCredits)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			log.Warn("课表生成超时", zap.Int("courses", len(courses)), zap.Duration("timeout", s.cfg.GenerateTimeout))
			return nil, ErrGenerateTimeout
		}
		var ge *planner.GenerationError
		if errors.As(err, &ge) {
			log.Error("课表生成失败", zap.Error(err))
		}
		return nil, err
	}

	// 3. 事务替换
	schedules := toScheduleModels(ranked)
	if err := s.repo.Schedule.ReplaceByUser(ctx, userID, schedules); err != nil {
		log.Error("保存课表方案失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.GenerateResponse{
		Total:     len(schedules),
		Schedules: make([]dto.ScheduleResponse, 0, len(schedules)),
	}
	for i := range schedules {
		for j := range schedules[i].Items {
			schedules[i].Items[j].Course = byID[schedules[i].Items[j].CourseID]
		}
		resp.Schedules = append(resp.Schedules, toScheduleResponse(&schedules[i]))
	}

	log.Info("课表生成完成",
		zap.Int("courses", len(courses)),
		zap.Int("min_credits", minCredits),
		zap.Int("max_credits", maxCredits),
		zap.Int("schedules", resp.Total),
		zap.Duration("elapsed", time.Since(started)),
	)
	return resp, nil
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询课表方案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, toScheduleResponse(&schedules[i]))
	}
	return out, nil
}

func (s *scheduleService) Events(ctx context.Context, userID, scheduleID string) (*dto.ScheduleEventsResponse, error) {
	schedule, err := s.repo.Schedule.GetByIDAndUser(ctx, scheduleID, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课表方案失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	cand, err := toCandidate(schedule)
	if err != nil {
		s.logger.Error("方案数据无效", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}

	return &dto.ScheduleEventsResponse{
		ScheduleID: schedule.ScheduleID,
		Name:       schedule.Name,
		Events:     toEventResponses(planner.Events(cand)),
	}, nil
}
