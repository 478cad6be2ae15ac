package model

import (
	"time"
)

// DonationModel 捐赠记录，金额拆分在创建时固定，之后不再重算
type DonationModel struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId   string `json:"campaign_id" gorm:"not null;index;size:36"`
	DonorAddress string `json:"donor_address" gorm:"not null;index"`

	// 金额拆分（lamports），Amount = PlatformFee + CreatorAmount 恒成立
	Amount        uint64 `json:"amount" gorm:"not null"`
	PlatformFee   uint64 `json:"platform_fee" gorm:"default:0"`
	CreatorAmount uint64 `json:"creator_amount" gorm:"not null"`

	// 链上交易签名，提交前为空
	TxSignature string `json:"tx_signature" gorm:"uniqueIndex;default:null"`

	Status      DonationStatus `json:"status" gorm:"default:'pending';index"`
	ConfirmedAt *time.Time     `json:"confirmed_at"`

	// 关联
	Campaign CampaignModel `json:"campaign,omitempty" gorm:"foreignKey:CampaignId;constraint:OnDelete:CASCADE"`
}

// DonationStatus 捐赠状态
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"   // 待确认
	DonationStatusConfirmed DonationStatus = "confirmed" // 已确认（终态）
	DonationStatusFailed    DonationStatus = "failed"    // 失败（终态）
)

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}
