package task

import (
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// DonationExpireJob 超时捐赠过期任务
// 捐赠者签名后可能从未广播交易，超时仍pending的捐赠统一置为失败
type DonationExpireJob struct {
	donationLogic *logic.DonationLogic
	config        *config.Config
}

// NewDonationExpireJob 创建超时捐赠过期任务
func NewDonationExpireJob(donationLogic *logic.DonationLogic, cfg *config.Config) *DonationExpireJob {
	return &DonationExpireJob{
		donationLogic: donationLogic,
		config:        cfg,
	}
}

// GetName 获取任务名称
func (j *DonationExpireJob) GetName() string {
	return "donation_expire_sweeper"
}

// GetSchedule 获取调度配置
func (j *DonationExpireJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *DonationExpireJob) Execute() {
	maxAge := time.Duration(j.config.Donation.StaleMinutes) * time.Minute

	expired, err := j.donationLogic.ExpireStale(maxAge)
	if err != nil {
		logger.Error("Failed to expire stale donations: %v", err)
		return
	}

	if expired > 0 {
		logger.Info("Expired %d stale pending donations", expired)
	}
}
