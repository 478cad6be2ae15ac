package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignLogic 众筹活动业务逻辑
type CampaignLogic struct {
	db             *gorm.DB
	challengeLogic *ChallengeLogic
}

// NewCampaignLogic 创建众筹活动业务逻辑
func NewCampaignLogic(db *gorm.DB, challengeLogic *ChallengeLogic) *CampaignLogic {
	return &CampaignLogic{db: db, challengeLogic: challengeLogic}
}

// CreateCampaign 创建众筹活动
// 创建者地址必须持有有效的钱包验证记录，证明其确实控制收款地址
func (p *CampaignLogic) CreateCampaign(campaign *model.CampaignModel) error {
	// 验证活动数据
	if err := p.validateCampaign(campaign); err != nil {
		return err
	}

	// 创建者必须已完成钱包验证
	if _, err := p.challengeLogic.GetVerification(campaign.CreatorAddress); err != nil {
		return err
	}

	// 设置默认值
	campaign.Id = uuid.NewString()
	campaign.Status = model.CampaignStatusActive
	campaign.RaisedAmount = 0
	campaign.DonationCount = 0

	// 创建活动
	if err := p.db.Create(campaign).Error; err != nil {
		return err
	}

	return nil
}

// GetCampaigns 分页获取活动列表
func (p *CampaignLogic) GetCampaigns(status string, page, pageSize int) ([]model.CampaignModel, int64, error) {
	var campaigns []model.CampaignModel
	var total int64

	query := p.db.Model(&model.CampaignModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// GetCampaign 获取活动详情
func (p *CampaignLogic) GetCampaign(id string) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := p.db.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("众筹活动%w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("获取活动详情失败: %w", err)
	}

	return &campaign, nil
}

// UpdateStatus 更新活动状态，只允许合法的状态迁移
func (p *CampaignLogic) UpdateStatus(id string, newStatus model.CampaignStatus) error {
	campaign, err := p.GetCampaign(id)
	if err != nil {
		return err
	}

	if !statusTransitionAllowed(campaign.Status, newStatus) {
		return fmt.Errorf("不允许从 %s 变更为 %s", campaign.Status, newStatus)
	}

	return p.db.Model(campaign).Update("status", newStatus).Error
}

// CancelCampaign 取消活动
func (p *CampaignLogic) CancelCampaign(id string) error {
	return p.UpdateStatus(id, model.CampaignStatusCancelled)
}

// GetCampaignStats 获取活动统计信息，只统计已确认的捐赠
func (p *CampaignLogic) GetCampaignStats(id string) (map[string]interface{}, error) {
	campaign, err := p.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	var stats struct {
		DonorCount    int64  `json:"donor_count"`
		TotalAmount   uint64 `json:"total_amount"`
		AverageAmount uint64 `json:"average_amount"`
	}

	// 唯一捐赠者数量
	err = p.db.Model(&model.DonationModel{}).
		Where("campaign_id = ? AND status = ?", id, model.DonationStatusConfirmed).
		Select("COUNT(DISTINCT donor_address)").
		Scan(&stats.DonorCount).Error
	if err != nil {
		return nil, fmt.Errorf("获取捐赠者数量失败: %w", err)
	}

	// 已确认捐赠总额
	err = p.db.Model(&model.DonationModel{}).
		Where("campaign_id = ? AND status = ?", id, model.DonationStatusConfirmed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error
	if err != nil {
		return nil, fmt.Errorf("获取捐赠总额失败: %w", err)
	}

	if campaign.DonationCount > 0 {
		stats.AverageAmount = stats.TotalAmount / uint64(campaign.DonationCount)
	}

	// 计算完成百分比
	completionPercentage := float64(0)
	if campaign.GoalAmount > 0 {
		completionPercentage = float64(campaign.RaisedAmount) / float64(campaign.GoalAmount) * 100
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if campaign.Status == model.CampaignStatusActive && time.Now().Before(campaign.Deadline) {
		remainingTime = time.Until(campaign.Deadline)
	}

	return map[string]interface{}{
		"campaign_id":           campaign.Id,
		"raised_amount":         campaign.RaisedAmount,
		"goal_amount":           campaign.GoalAmount,
		"donation_count":        campaign.DonationCount,
		"donor_count":           stats.DonorCount,
		"average_amount":        stats.AverageAmount,
		"completion_percentage": completionPercentage,
		"remaining_seconds":     int64(remainingTime.Seconds()),
		"status":                campaign.Status,
	}, nil
}

// validateCampaign 验证活动数据
func (p *CampaignLogic) validateCampaign(campaign *model.CampaignModel) error {
	if campaign.Title == "" {
		return errors.New("活动标题不能为空")
	}
	if campaign.GoalAmount == 0 {
		return errors.New("目标金额必须大于0")
	}
	if campaign.Deadline.Before(time.Now()) {
		return errors.New("截止时间必须晚于当前时间")
	}
	if _, err := chain.ValidateAddress(campaign.CreatorAddress); err != nil {
		return err
	}
	return nil
}

// statusTransitionAllowed 活动状态迁移规则
func statusTransitionAllowed(from, to model.CampaignStatus) bool {
	switch from {
	case model.CampaignStatusDraft:
		return to == model.CampaignStatusActive || to == model.CampaignStatusCancelled
	case model.CampaignStatusActive:
		return to == model.CampaignStatusPaused || to == model.CampaignStatusCompleted ||
			to == model.CampaignStatusFailed || to == model.CampaignStatusCancelled
	case model.CampaignStatusPaused:
		return to == model.CampaignStatusActive || to == model.CampaignStatusCancelled
	default:
		// completed/failed/cancelled 为终态
		return false
	}
}
