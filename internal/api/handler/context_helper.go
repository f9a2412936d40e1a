package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"schedule-gen/backend/internal/api/middleware"
	"schedule-gen/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// tokenInfo 取出当前 Token 的 jti 与过期时间（登出时使用）
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.ContextTokenJTI), c.GetTime(middleware.ContextTokenExp)
}
