package models

import (
	"time"

	"gorm.io/gorm"
)

// 援助项目状态
const (
	CampaignStatusActive = "active" // 进行中
	CampaignStatusPaused = "paused" // 暂停：不可新增交易和捐赠
	CampaignStatusClosed = "closed" // 已结束
)

// Campaign 援助项目模型
// Categories 为项目启用的类别列表（有序），CategoryMaxLimits 为"类别 -> 单个受助人限额"映射。
// 两者均为管理端动态配置，键集合不做一致性校验：配置了限额但已停用的类别仍参与余额计算。
type Campaign struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"size:100;not null"`
	Location          string         `json:"location" gorm:"size:100"`
	Status            string         `json:"status" gorm:"size:20;default:active;index"` // active/paused/closed
	Categories        StringList     `json:"categories" gorm:"type:json"`
	CategoryMaxLimits AmountMap      `json:"category_max_limits" gorm:"type:json"`
	BeneficiaryCap    float64        `json:"beneficiary_cap" gorm:"type:decimal(12,2);default:0"` // 单个受助人总限额，独立于各类别限额之和
	OrganisationID    uint           `json:"organisation_id" gorm:"index;not null"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
	Organisation      Organisation   `json:"-" gorm:"foreignKey:OrganisationID"`
}

// TableName 设置表名
func (Campaign) TableName() string {
	return "campaigns"
}
