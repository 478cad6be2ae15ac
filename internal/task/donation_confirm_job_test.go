package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/model"
	"github.com/blues/scf/internal/transfer"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type fixedBlockhashProvider struct{}

func (fixedBlockhashProvider) LatestBlockhash(_ context.Context) (solana.Hash, error) {
	return solana.Hash{}, nil
}

type stubLedger struct {
	mu        sync.Mutex
	statuses  map[string]*chain.TransactionStatus
	submitSig string
}

func (s *stubLedger) GetTransaction(_ context.Context, txSignature string) (*chain.TransactionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.statuses[txSignature]; ok {
		return status, nil
	}
	return nil, errs.ErrNotYetObserved
}

func (s *stubLedger) SubmitTransaction(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitSig, nil
}

func newConfirmJobFixture(t *testing.T) (*DonationConfirmJob, *logic.DonationLogic, *stubLedger, *model.CampaignModel, *gorm.DB) {
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
	require.NoError(t, db.AutoMigrate(&model.CampaignModel{}, &model.DonationModel{}))

	builder, err := transfer.NewBuilder(fixedBlockhashProvider{}, config.PlatformConfig{FeeEnabled: false})
	require.NoError(t, err)

	ledger := &stubLedger{statuses: make(map[string]*chain.TransactionStatus)}
	donationLogic := logic.NewDonationLogic(db, builder, ledger)

	creator, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	campaign := &model.CampaignModel{
		Id:             "campaign-sweep",
		Title:          "测试活动",
		GoalAmount:     10_000_000_000,
		Status:         model.CampaignStatusActive,
		Deadline:       time.Now().Add(24 * time.Hour),
		CreatorAddress: creator.PublicKey().String(),
	}
	require.NoError(t, db.Create(campaign).Error)

	job := NewDonationConfirmJob(donationLogic, &config.Config{Task: config.TaskConfig{Interval: 60}})
	return job, donationLogic, ledger, campaign, db
}

func TestDonationConfirmJobExecute(t *testing.T) {
	job, donationLogic, ledger, campaign, db := newConfirmJobFixture(t)

	donor, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	ledger.submitSig = "sweep-sig-1"
	donation, _, err := donationLogic.CreatePending(context.Background(), campaign.Id, donor.PublicKey().String(), 1_000_000_000)
	require.NoError(t, err)
	_, err = donationLogic.Submit(context.Background(), donation.Id, "base64-signed-tx")
	require.NoError(t, err)

	// 第一轮扫描：链上尚未观察到，保持pending
	job.Execute()
	var got model.DonationModel
	require.NoError(t, db.First(&got, "id = ?", donation.Id).Error)
	assert.Equal(t, model.DonationStatusPending, got.Status)

	// 交易上链后的扫描完成确认，协程池跨轮次复用
	ledger.mu.Lock()
	ledger.statuses["sweep-sig-1"] = &chain.TransactionStatus{Slot: 100}
	ledger.mu.Unlock()
	job.Execute()

	require.NoError(t, db.First(&got, "id = ?", donation.Id).Error)
	assert.Equal(t, model.DonationStatusConfirmed, got.Status)

	var gotCampaign model.CampaignModel
	require.NoError(t, db.First(&gotCampaign, "id = ?", campaign.Id).Error)
	assert.Equal(t, uint64(1_000_000_000), gotCampaign.RaisedAmount)
	assert.Equal(t, int64(1), gotCampaign.DonationCount)

	// 已确认后再扫描是空操作
	job.Execute()
	require.NoError(t, db.First(&gotCampaign, "id = ?", campaign.Id).Error)
	assert.Equal(t, uint64(1_000_000_000), gotCampaign.RaisedAmount)
}
