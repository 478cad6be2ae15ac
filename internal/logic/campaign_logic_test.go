package logic

import (
	"testing"
	"time"

	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCampaignFixture(t *testing.T) (*CampaignLogic, *ChallengeLogic, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	challengeLogic := NewChallengeLogic(db, newTestConfig())
	return NewCampaignLogic(db, challengeLogic), challengeLogic, db
}

// verifyWallet 为地址走完整的挑战验证流程
func verifyWallet(t *testing.T, challengeLogic *ChallengeLogic) string {
	t.Helper()
	priv := newTestKey(t)
	address := priv.PublicKey().String()

	challenge, err := challengeLogic.IssueChallenge(address)
	require.NoError(t, err)
	sig, err := priv.Sign([]byte(challenge.Message))
	require.NoError(t, err)
	_, err = challengeLogic.Verify(address, challenge.Message, sig.String())
	require.NoError(t, err)
	return address
}

func TestCreateCampaign(t *testing.T) {
	logic, challengeLogic, _ := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)

	campaign := &model.CampaignModel{
		Title:          "开源硬件众筹",
		GoalAmount:     5_000_000_000,
		Deadline:       time.Now().Add(30 * 24 * time.Hour),
		CreatorAddress: creator,
	}
	require.NoError(t, logic.CreateCampaign(campaign))

	assert.NotEmpty(t, campaign.Id)
	assert.Equal(t, model.CampaignStatusActive, campaign.Status)
	assert.Equal(t, uint64(0), campaign.RaisedAmount)
	assert.Equal(t, int64(0), campaign.DonationCount)
}

func TestCreateCampaignRequiresVerifiedWallet(t *testing.T) {
	logic, _, _ := newCampaignFixture(t)
	creator := newTestKey(t).PublicKey().String()

	campaign := &model.CampaignModel{
		Title:          "未验证钱包",
		GoalAmount:     1_000_000_000,
		Deadline:       time.Now().Add(24 * time.Hour),
		CreatorAddress: creator,
	}
	err := logic.CreateCampaign(campaign)
	assert.ErrorIs(t, err, errs.ErrWalletNotVerified)
}

func TestCreateCampaignValidation(t *testing.T) {
	logic, challengeLogic, _ := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)

	cases := []struct {
		name     string
		campaign model.CampaignModel
	}{
		{"空标题", model.CampaignModel{
			GoalAmount: 1, Deadline: time.Now().Add(time.Hour), CreatorAddress: creator}},
		{"目标金额为0", model.CampaignModel{
			Title: "t", Deadline: time.Now().Add(time.Hour), CreatorAddress: creator}},
		{"截止时间已过", model.CampaignModel{
			Title: "t", GoalAmount: 1, Deadline: time.Now().Add(-time.Hour), CreatorAddress: creator}},
		{"创建者地址非法", model.CampaignModel{
			Title: "t", GoalAmount: 1, Deadline: time.Now().Add(time.Hour), CreatorAddress: "bad"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			campaign := tc.campaign
			assert.Error(t, logic.CreateCampaign(&campaign))
		})
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	logic, challengeLogic, db := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)
	campaign := createTestCampaign(t, db, creator)

	// active → paused → active 允许
	require.NoError(t, logic.UpdateStatus(campaign.Id, model.CampaignStatusPaused))
	require.NoError(t, logic.UpdateStatus(campaign.Id, model.CampaignStatusActive))

	// active → completed 允许，completed 为终态
	require.NoError(t, logic.UpdateStatus(campaign.Id, model.CampaignStatusCompleted))
	assert.Error(t, logic.UpdateStatus(campaign.Id, model.CampaignStatusActive))
	assert.Error(t, logic.UpdateStatus(campaign.Id, model.CampaignStatusCancelled))
}

func TestGetCampaignNotFound(t *testing.T) {
	logic, _, _ := newCampaignFixture(t)

	_, err := logic.GetCampaign("no-such-campaign")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCancelCampaign(t *testing.T) {
	logic, challengeLogic, db := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)
	campaign := createTestCampaign(t, db, creator)

	require.NoError(t, logic.CancelCampaign(campaign.Id))

	got, err := logic.GetCampaign(campaign.Id)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusCancelled, got.Status)
}

func TestGetCampaigns(t *testing.T) {
	logic, challengeLogic, db := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)
	campaign := createTestCampaign(t, db, creator)
	require.NoError(t, db.Model(campaign).Update("status", model.CampaignStatusCompleted).Error)

	other := verifyWallet(t, challengeLogic)
	createTestCampaign(t, db, other)

	active, total, err := logic.GetCampaigns(string(model.CampaignStatusActive), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, active, 1)
	assert.Equal(t, other, active[0].CreatorAddress)

	all, total, err := logic.GetCampaigns("", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestGetCampaignStats(t *testing.T) {
	logic, challengeLogic, db := newCampaignFixture(t)
	creator := verifyWallet(t, challengeLogic)
	campaign := createTestCampaign(t, db, creator)

	donorA := newTestKey(t).PublicKey().String()
	donorB := newTestKey(t).PublicKey().String()
	now := time.Now()

	// 两个捐赠者三笔已确认，外加一笔pending不计入
	confirmed := []model.DonationModel{
		{Id: "d1", CampaignId: campaign.Id, DonorAddress: donorA, Amount: 1_000_000_000,
			CreatorAmount: 980_000_000, Status: model.DonationStatusConfirmed, ConfirmedAt: &now, TxSignature: "s1"},
		{Id: "d2", CampaignId: campaign.Id, DonorAddress: donorA, Amount: 2_000_000_000,
			CreatorAmount: 1_960_000_000, Status: model.DonationStatusConfirmed, ConfirmedAt: &now, TxSignature: "s2"},
		{Id: "d3", CampaignId: campaign.Id, DonorAddress: donorB, Amount: 3_000_000_000,
			CreatorAmount: 2_940_000_000, Status: model.DonationStatusConfirmed, ConfirmedAt: &now, TxSignature: "s3"},
		{Id: "d4", CampaignId: campaign.Id, DonorAddress: donorB, Amount: 9_000_000_000,
			CreatorAmount: 8_820_000_000, Status: model.DonationStatusPending},
	}
	for i := range confirmed {
		require.NoError(t, db.Create(&confirmed[i]).Error)
	}
	require.NoError(t, db.Model(campaign).Updates(map[string]interface{}{
		"raised_amount":  6_000_000_000,
		"donation_count": 3,
	}).Error)

	stats, err := logic.GetCampaignStats(campaign.Id)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats["donor_count"])
	assert.Equal(t, uint64(6_000_000_000), stats["raised_amount"])
	assert.Equal(t, uint64(2_000_000_000), stats["average_amount"])
	assert.Equal(t, float64(60), stats["completion_percentage"])
	assert.Greater(t, stats["remaining_seconds"].(int64), int64(0))
}
