package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"schedule-gen/backend/internal/dto"
	"schedule-gen/backend/internal/planner"
	"schedule-gen/backend/internal/service"
	"schedule-gen/backend/pkg/response"
)

// ScheduleHandler 课表生成模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Generate 重新生成课表方案
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateRequest
	// 请求体可为空，全部使用默认学分范围
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, 13001, "学分参数无效")
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleGenerateError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSchedules 已生成的方案（按排名）
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.scheduleSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, list, len(list))
}

// GetEvents 方案的周视图事件
// GET /api/v1/schedules/:id/events
func (h *ScheduleHandler) GetEvents(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Events(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 13004, "课表方案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

func (h *ScheduleHandler) handleGenerateError(c *gin.Context, err error) {
	var ve *planner.ValidationError
	var ge *planner.GenerationError
	switch {
	case errors.Is(err, planner.ErrInvalidBudget):
		response.BadRequest(c, 13002, "学分上限不能为负数")
	case errors.Is(err, planner.ErrTooManyCourses):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 13003, "课程数量超过排课上限", err.Error())
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 12001, "课程信息无效", ve.Error())
	case errors.Is(err, service.ErrGenerateTimeout):
		response.GatewayTimeout(c, 13005, "课表生成超时，请减少课程数量后重试")
	case errors.As(err, &ge):
		response.Error(c, http.StatusInternalServerError, 13005, "课表生成失败")
	default:
		response.InternalError(c)
	}
}
