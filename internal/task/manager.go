package task

import (
	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler      gocron.Scheduler
	db             *gorm.DB
	donationLogic  *logic.DonationLogic
	challengeLogic *logic.ChallengeLogic
	config         *config.Config
}

// Job 定时任务接口
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, donationLogic *logic.DonationLogic, challengeLogic *logic.ChallengeLogic, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler:      s,
		db:             db,
		donationLogic:  donationLogic,
		challengeLogic: challengeLogic,
		config:         cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, donationLogic *logic.DonationLogic, challengeLogic *logic.ChallengeLogic, cfg *config.Config) *Manager {
	manager := NewManager(db, donationLogic, challengeLogic, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 捐赠确认扫描任务
	m.registerJob(NewDonationConfirmJob(m.donationLogic, m.config))
	// 超时捐赠过期任务
	m.registerJob(NewDonationExpireJob(m.donationLogic, m.config))
	// 过期挑战清理任务
	m.registerJob(NewChallengeCleanupJob(m.challengeLogic, m.config))
	// 活动状态更新任务
	m.registerJob(NewCampaignStatusJob(m.db, m.config))
}

// registerJob 注册单个任务
func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
