package models

import (
	"time"

	"gorm.io/gorm"
)

// 交易状态（展示用标签）
const (
	TransactionStatusPaid = "paid"
)

// Transaction 消费交易模型：商户确认收款时创建，创建后不可修改
type Transaction struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	BeneficiaryID   uint           `json:"beneficiary_id" gorm:"index;not null"`
	VendorID        uint           `json:"vendor_id" gorm:"index;not null"`
	Category        string         `json:"category" gorm:"size:50;not null"`
	Amount          float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status          string         `json:"status" gorm:"size:20;default:paid"`
	TransactionTime time.Time      `json:"transaction_time" gorm:"not null;index"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	Beneficiary     Beneficiary    `json:"-" gorm:"foreignKey:BeneficiaryID"`
	Vendor          Vendor         `json:"-" gorm:"foreignKey:VendorID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
