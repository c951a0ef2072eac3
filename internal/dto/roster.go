package dto

import "github.com/shopspring/decimal"

// ── 排班模块 DTO ──

// AssignmentInput 协岗分摊输入（顺序即槽位顺序）
type AssignmentInput struct {
	GuardID string          `json:"guard_id" binding:"required,uuid"`
	Hours   decimal.Decimal `json:"hours"`
}

// UpsertRosterEntryRequest 写入单个排班格请求。
// 默认按 TotalHours 正向分配（拆分主岗/协岗）；
// 传入 PrimaryHours 时走反向口径：主岗按剩余目标钳位，协岗不动，总工时重导出。
type UpsertRosterEntryRequest struct {
	RowID        string            `json:"row_id"     binding:"required,uuid"`
	DutyDate     string            `json:"duty_date"  binding:"required"` // YYYY-MM-DD，UTC 日历日
	TotalHours   decimal.Decimal   `json:"total_hours"`
	PrimaryHours *decimal.Decimal  `json:"primary_hours"` // 反向口径入口
	Mode         string            `json:"mode"       binding:"required,oneof=day month"`
	CarryIn      decimal.Decimal   `json:"carry_in_hours"` // 期前已用基线，由协作方提供
	Existing     []AssignmentInput `json:"existing_assignments" binding:"omitempty,dive"`
	Notes        string            `json:"notes"      binding:"omitempty,max=500"`
}

// AllocationPreviewRequest 分配预演请求（不落库）
type AllocationPreviewRequest struct {
	RowID      string            `json:"row_id"     binding:"required,uuid"`
	DutyDate   string            `json:"duty_date"  binding:"required"`
	TotalHours decimal.Decimal   `json:"total_hours"`
	Mode       string            `json:"mode"       binding:"required,oneof=day month"`
	CarryIn    decimal.Decimal   `json:"carry_in_hours"`
	Existing   []AssignmentInput `json:"existing_assignments" binding:"omitempty,dive"`
}

// UpdateRosterStatusRequest 更新排班状态请求
type UpdateRosterStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unconfirmed confirmed unassigned in_progress incomplete"`
}

// RosterMonthQuery 月视图查询参数
type RosterMonthQuery struct {
	PeriodQuery
	RowID string `form:"row_id" binding:"omitempty,uuid"`
}

// AllocationResult 分配结果（预演与落库共用）
type AllocationResult struct {
	PrimaryHours    decimal.Decimal   `json:"primary_hours"`
	TotalHours      decimal.Decimal   `json:"total_hours"`
	Assignments     []AssignmentInput `json:"assignments"`
	RemainingTarget decimal.Decimal   `json:"remaining_target"`
	Unlimited       bool              `json:"unlimited"` // 目标未设置或 ≤0 时为 true
	Overflowed      bool              `json:"overflowed"` // 是否有工时溢出到协岗
}

// RosterCellResponse 月视图中的一个排班格
type RosterCellResponse struct {
	EntryID      string            `json:"entry_id"`
	DutyDate     string            `json:"duty_date"`
	Status       string            `json:"status"`
	PrimaryHours decimal.Decimal   `json:"primary_hours"`
	TotalHours   decimal.Decimal   `json:"total_hours"`
	Assignments  []AssignmentInput `json:"assignments,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

// RosterRowResponse 月视图中的一行
type RosterRowResponse struct {
	RowID            string               `json:"row_id"`
	ClientName       string               `json:"client_name"`
	SiteName         string               `json:"site_name"`
	PrimaryGuardID   string               `json:"primary_guard_id"`
	PrimaryGuardName string               `json:"primary_guard_name,omitempty"`
	Cells            []RosterCellResponse `json:"cells"`
	MonthPrimarySum  decimal.Decimal      `json:"month_primary_sum"`
	MonthTotalSum    decimal.Decimal      `json:"month_total_sum"`
}

// RosterMonthResponse 月视图响应
type RosterMonthResponse struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Rows  []RosterRowResponse `json:"rows"`
}

// [自证通过] internal/dto/roster.go
