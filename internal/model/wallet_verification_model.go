package model

import (
	"time"
)

// WalletVerificationModel 钱包所有权验证记录
// 每个地址至多一条，重复验证原地覆盖
type WalletVerificationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address    string    `json:"address" gorm:"uniqueIndex;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	Signature  string    `json:"signature" gorm:"not null"`
	VerifiedAt time.Time `json:"verified_at" gorm:"not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
}

// TableName 自定义表名
func (WalletVerificationModel) TableName() string {
	return "wallet_verification"
}
