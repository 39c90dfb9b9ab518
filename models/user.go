package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// UserStatusLocked 锁定：不可登录
	UserStatusLocked = "locked"
	// UserStatusActive 正常：可登录
	UserStatusActive = "active"
)

// 用户角色：决定可访问的端（后台 / App）和可执行的操作
const (
	RoleAdmin       = "admin"       // 项目管理员，后台全部权限
	RoleHQ          = "hq"          // 总部，后台统计与导出
	RoleDonor       = "donor"       // 捐赠人
	RoleBeneficiary = "beneficiary" // 受助人
	RoleVendor      = "vendor"      // 商户
)

// User 用户模型
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Email     string         `json:"email" gorm:"size:100"`
	Role      string         `json:"role" gorm:"size:20;default:donor;index"`    // 角色：admin/hq/donor/beneficiary/vendor
	Status    string         `json:"status" gorm:"size:20;default:locked;index"` // 用户状态：locked/active
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// IsBackofficeRole 是否可登录后台（管理员与总部）
func (u *User) IsBackofficeRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleHQ
}
