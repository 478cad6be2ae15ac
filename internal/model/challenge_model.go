package model

import (
	"time"
)

// ChallengeModel 钱包所有权验证挑战
// UsedAt 从空到非空只允许发生一次，由条件更新保证（防重放）
type ChallengeModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Nonce     string     `json:"nonce" gorm:"uniqueIndex;not null"`
	Address   string     `json:"address" gorm:"not null;index"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null;index"`
	UsedAt    *time.Time `json:"used_at"`
}

// TableName 自定义表名
func (ChallengeModel) TableName() string {
	return "challenge"
}
