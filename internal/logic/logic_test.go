package logic

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/model"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB 创建内存数据库
// 单连接保证所有会话看到同一份内存库，并发用例在连接层串行化
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.CampaignModel{},
		&model.DonationModel{},
		&model.ChallengeModel{},
		&model.WalletVerificationModel{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Challenge:    config.ChallengeConfig{TTLMinutes: 5},
		Verification: config.VerificationConfig{TTLHours: 24},
	}
}

func newTestKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	priv, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return priv
}

// createTestCampaign 直接落库一条进行中的活动
func createTestCampaign(t *testing.T, db *gorm.DB, creatorAddress string) *model.CampaignModel {
	t.Helper()
	campaign := &model.CampaignModel{
		Id:             "campaign-" + creatorAddress[:8],
		Title:          "测试活动",
		GoalAmount:     10_000_000_000,
		Status:         model.CampaignStatusActive,
		Deadline:       time.Now().Add(30 * 24 * time.Hour),
		CreatorAddress: creatorAddress,
	}
	require.NoError(t, db.Create(campaign).Error)
	return campaign
}

type fixedBlockhashProvider struct{}

func (fixedBlockhashProvider) LatestBlockhash(_ context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

// fakeLedger 测试用链上读写桩
type fakeLedger struct {
	mu        sync.Mutex
	statuses  map[string]*chain.TransactionStatus
	errors    map[string]error
	submitSig string
	getCalls  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		statuses: make(map[string]*chain.TransactionStatus),
		errors:   make(map[string]error),
	}
}

func (f *fakeLedger) GetTransaction(_ context.Context, txSignature string) (*chain.TransactionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if err, ok := f.errors[txSignature]; ok {
		return nil, err
	}
	if status, ok := f.statuses[txSignature]; ok {
		return status, nil
	}
	return nil, errs.ErrNotYetObserved
}

func (f *fakeLedger) SubmitTransaction(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitSig, nil
}
