package models

import (
	"time"

	"gorm.io/gorm"
)

// Organisation 运营机构：援助项目的归属方，受助人审批以机构名义进行
type Organisation struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Region       string         `json:"region" gorm:"size:100"`
	ContactEmail string         `json:"contact_email" gorm:"size:100"`
	AdminUserID  uint           `json:"admin_user_id" gorm:"index;not null"` // 归属管理员
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Organisation) TableName() string {
	return "organisations"
}
