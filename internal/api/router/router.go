package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedule-gen/backend/config"
	"schedule-gen/backend/internal/api/handler"
	"schedule-gen/backend/internal/api/middleware"
	"schedule-gen/backend/pkg/jwt"
	"schedule-gen/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时黑名单与限流降级关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 仅在 Redis 可用时传入接口，避免 nil 指针包装成非 nil 接口
	var checker middleware.TokenChecker
	var limiter middleware.RateLimiter
	if rdb != nil {
		checker = rdb
		limiter = rdb
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, checker, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.POST("", h.Course.CreateCourse)
				courses.DELETE("/:id", h.Course.DeleteCourse)
			}

			// 课表方案模块
			rate := cfg.Server.GenerateRate
			schedules := authorized.Group("/schedules")
			{
				schedules.POST("/generate", middleware.RateLimit(limiter, rate.Limit, rate.Window), h.Schedule.Generate)
				schedules.GET("", h.Schedule.ListSchedules)
				schedules.GET("/:id/events", h.Schedule.GetEvents)
				schedules.GET("/:id/ics", h.Export.ExportICS)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/schedules", h.Export.ExportWorkbook)
			}
		}
	}

	return r
}
