package models

import (
	"time"

	"gorm.io/gorm"
)

// 商户状态
const (
	VendorStatusPending   = "pending"   // 待审批
	VendorStatusApproved  = "approved"  // 已批准：可收款
	VendorStatusSuspended = "suspended" // 已暂停
)

// Vendor 商户模型：被授权为受助人提供指定类别商品的店铺
type Vendor struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	StoreName  string         `json:"store_name" gorm:"size:100;not null"`
	UserID     uint           `json:"user_id" gorm:"uniqueIndex;not null"` // 关联登录账号
	CampaignID uint           `json:"campaign_id" gorm:"index;not null"`
	Status     string         `json:"status" gorm:"size:20;default:pending;index"` // pending/approved/suspended
	Categories StringList     `json:"categories" gorm:"type:json"`                 // 可经营的类别
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
	Campaign   Campaign       `json:"-" gorm:"foreignKey:CampaignID"`
}

// TableName 设置表名
func (Vendor) TableName() string {
	return "vendors"
}

// ServesCategory 商户是否经营指定类别；未配置类别列表时视为全类别经营
func (v *Vendor) ServesCategory(category string) bool {
	if len(v.Categories) == 0 {
		return true
	}
	for _, c := range v.Categories {
		if c == category {
			return true
		}
	}
	return false
}
