package models

import (
	"time"

	"gorm.io/gorm"
)

// 受助人状态
const (
	BeneficiaryStatusPending   = "pending"   // 待审批
	BeneficiaryStatusApproved  = "approved"  // 已批准：可消费
	BeneficiaryStatusSuspended = "suspended" // 已暂停
)

// 受助人操作日志 action 取值
const (
	BeneficiaryActionCreated   = "created"
	BeneficiaryActionApproved  = "approved"
	BeneficiaryActionSuspended = "suspended"
)

// Beneficiary 受助人模型
// 一个受助人终生归属一个援助项目；ActivityLog 只追加不修改。
type Beneficiary struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	BeneficiaryCode string         `json:"beneficiary_code" gorm:"uniqueIndex;size:30;not null"` // 人类可读编号，如 BNF-2024-0001
	FullName        string         `json:"full_name" gorm:"size:100;not null"`
	UserID          uint           `json:"user_id" gorm:"uniqueIndex;not null"` // 关联登录账号
	CampaignID      uint           `json:"campaign_id" gorm:"index;not null"`
	Status          string         `json:"status" gorm:"size:20;default:pending;index"` // pending/approved/suspended
	ActivityLog     ActivityLog    `json:"activity_log" gorm:"type:json"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	User            User           `json:"-" gorm:"foreignKey:UserID"`
	Campaign        Campaign       `json:"-" gorm:"foreignKey:CampaignID"`
}

// TableName 设置表名
func (Beneficiary) TableName() string {
	return "beneficiaries"
}

// AppendActivity 追加一条操作日志
func (b *Beneficiary) AppendActivity(action, details string) {
	b.ActivityLog = append(b.ActivityLog, ActivityEntry{
		Action:    action,
		Details:   details,
		Timestamp: time.Now().Unix(),
	})
}

// ApprovalTime 返回最近一条"批准"日志的时间；无批准日志时回退到创建时间。
// 状态不是 approved 时返回 nil。
func (b *Beneficiary) ApprovalTime() *time.Time {
	if b.Status != BeneficiaryStatusApproved {
		return nil
	}
	for i := len(b.ActivityLog) - 1; i >= 0; i-- {
		if b.ActivityLog[i].Action == BeneficiaryActionApproved {
			t := time.Unix(b.ActivityLog[i].Timestamp, 0)
			return &t
		}
	}
	t := b.CreatedAt
	return &t
}
