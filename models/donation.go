package models

import (
	"time"

	"gorm.io/gorm"
)

// Donation 捐赠记录模型
type Donation struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"` // 捐赠人账号
	CampaignID uint           `json:"campaign_id" gorm:"index;not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Message    string         `json:"message" gorm:"size:255"` // 捐赠留言，可为空
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	User       User           `json:"-" gorm:"foreignKey:UserID"`
	Campaign   Campaign       `json:"-" gorm:"foreignKey:CampaignID"`
}

// TableName 设置表名
func (Donation) TableName() string {
	return "donations"
}
