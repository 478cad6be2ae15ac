package task

import (
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CampaignStatusJob 活动状态更新任务
// 到期的进行中活动按是否达成目标转为completed或failed
type CampaignStatusJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewCampaignStatusJob 创建活动状态更新任务
func NewCampaignStatusJob(db *gorm.DB, cfg *config.Config) *CampaignStatusJob {
	return &CampaignStatusJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_updater"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	now := time.Now()

	// 查找已到期的进行中活动
	var campaigns []model.CampaignModel
	err := j.db.Where("status = ? AND deadline < ?", model.CampaignStatusActive, now).
		Find(&campaigns).Error
	if err != nil {
		logger.Error("Failed to fetch expired campaigns: %v", err)
		return
	}

	updatedCount := 0

	for _, campaign := range campaigns {
		newStatus := model.CampaignStatusFailed
		if campaign.RaisedAmount >= campaign.GoalAmount {
			newStatus = model.CampaignStatusCompleted
		}

		if err := j.db.Model(&campaign).Update("status", newStatus).Error; err != nil {
			logger.Error("Failed to update campaign %s status: %v", campaign.Id, err)
			continue
		}

		logger.Info("Updated campaign %s status from %s to %s",
			campaign.Id, campaign.Status, newStatus)
		updatedCount++
	}

	if updatedCount > 0 {
		logger.Info("Campaign status update completed. Updated %d campaigns", updatedCount)
	}
}
