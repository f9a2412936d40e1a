package service

import (
	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/repository"
	"schedule-gen/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Course   CourseService
	Schedule ScheduleService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Course:   NewCourseService(repo, logger),
		Schedule: NewScheduleService(&cfg.Planner, repo, logger),
		Export:   NewExportService(&cfg.Planner, repo, logger),
	}
}
