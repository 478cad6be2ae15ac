package task

import (
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// ChallengeCleanupJob 过期挑战清理任务
type ChallengeCleanupJob struct {
	challengeLogic *logic.ChallengeLogic
	config         *config.Config
}

// NewChallengeCleanupJob 创建过期挑战清理任务
func NewChallengeCleanupJob(challengeLogic *logic.ChallengeLogic, cfg *config.Config) *ChallengeCleanupJob {
	return &ChallengeCleanupJob{
		challengeLogic: challengeLogic,
		config:         cfg,
	}
}

// GetName 获取任务名称
func (j *ChallengeCleanupJob) GetName() string {
	return "challenge_cleanup"
}

// GetSchedule 获取调度配置
func (j *ChallengeCleanupJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ChallengeCleanupJob) Execute() {
	deleted, err := j.challengeLogic.CleanupExpired()
	if err != nil {
		logger.Error("Failed to cleanup expired challenges: %v", err)
		return
	}

	if deleted > 0 {
		logger.Info("Cleaned up %d expired challenges", deleted)
	}
}
