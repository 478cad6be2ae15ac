package model

import (
	"time"
)

// CampaignModel 众筹活动模型，金额一律以lamports整数存储
type CampaignModel struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`

	// 众筹信息
	GoalAmount    uint64 `json:"goal_amount" gorm:"not null"`    // 目标金额（lamports）
	RaisedAmount  uint64 `json:"raised_amount" gorm:"default:0"` // 已筹金额（lamports），仅由已确认捐赠累加
	DonationCount int64  `json:"donation_count" gorm:"default:0"`

	// 时间信息
	Deadline time.Time `json:"deadline" gorm:"not null"`

	// 状态
	Status CampaignStatus `json:"status" gorm:"default:'draft'"`

	// 创建者信息
	CreatorAddress string `json:"creator_address" gorm:"not null;index"`
	CreatorName    string `json:"creator_name"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"     // 草稿
	CampaignStatusActive    CampaignStatus = "active"    // 进行中
	CampaignStatusPaused    CampaignStatus = "paused"    // 已暂停
	CampaignStatusCompleted CampaignStatus = "completed" // 已完成
	CampaignStatusFailed    CampaignStatus = "failed"    // 未达成
	CampaignStatusCancelled CampaignStatus = "cancelled" // 已取消
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}
