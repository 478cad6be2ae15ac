package task

import (
	"context"
	"errors"
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

const (
	confirmBatchSize  = 100
	confirmWorkerSize = 8
)

// DonationConfirmJob 捐赠确认扫描任务
// 兜底客户端掉线后不再轮询确认的捐赠：扫描已有交易签名的pending记录逐笔对账
type DonationConfirmJob struct {
	donationLogic *logic.DonationLogic
	config        *config.Config
	pool          *ants.Pool
}

// NewDonationConfirmJob 创建捐赠确认扫描任务，协程池伴随任务常驻
func NewDonationConfirmJob(donationLogic *logic.DonationLogic, cfg *config.Config) *DonationConfirmJob {
	pool, err := ants.NewPool(confirmWorkerSize)
	if err != nil {
		logger.Fatal("Failed to create worker pool: %v", err)
	}

	return &DonationConfirmJob{
		donationLogic: donationLogic,
		config:        cfg,
		pool:          pool,
	}
}

// GetName 获取任务名称
func (j *DonationConfirmJob) GetName() string {
	return "donation_confirm_sweeper"
}

// GetSchedule 获取调度配置
func (j *DonationConfirmJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *DonationConfirmJob) Execute() {
	logger.Info("Starting donation confirm sweep")

	donations, err := j.donationLogic.GetPendingWithReference(confirmBatchSize)
	if err != nil {
		logger.Error("Failed to fetch pending donations: %v", err)
		return
	}
	if len(donations) == 0 {
		return
	}

	// 用常驻协程池并发确认，每笔捐赠的确认彼此独立
	confirmedCount := 0
	done := make(chan bool, len(donations))

	for i := range donations {
		donation := donations[i]
		err := j.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := j.donationLogic.Confirm(ctx, donation.Id, donation.TxSignature)
			if err != nil {
				if !errors.Is(err, errs.ErrNotYetObserved) {
					logger.Error("Failed to confirm donation %s: %v", donation.Id, err)
				}
				done <- false
				return
			}
			done <- result.Status == model.DonationStatusConfirmed
		})
		if err != nil {
			logger.Error("Failed to submit confirm task: %v", err)
			done <- false
		}
	}

	for range donations {
		if <-done {
			confirmedCount++
		}
	}

	logger.Info("Donation confirm sweep completed. Confirmed %d of %d donations",
		confirmedCount, len(donations))
}
