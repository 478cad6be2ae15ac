package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/model"
	"github.com/blues/scf/internal/transfer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger 结算状态机依赖的链上读写原语
type Ledger interface {
	GetTransaction(ctx context.Context, txSignature string) (*chain.TransactionStatus, error)
	SubmitTransaction(ctx context.Context, signedTxBase64 string) (string, error)
}

// DonationLogic 捐赠结算业务逻辑
type DonationLogic struct {
	db      *gorm.DB
	builder *transfer.Builder
	ledger  Ledger
}

// NewDonationLogic 创建捐赠结算业务逻辑
func NewDonationLogic(db *gorm.DB, builder *transfer.Builder, ledger Ledger) *DonationLogic {
	return &DonationLogic{
		db:      db,
		builder: builder,
		ledger:  ledger,
	}
}

// CreatePending 创建pending捐赠并构造未签名转账交易
// 金额拆分在此刻固定写入记录，之后手续费配置变化也不再重算
func (d *DonationLogic) CreatePending(ctx context.Context, campaignId, donorAddress string, lamports uint64) (*model.DonationModel, string, error) {
	donor, err := chain.ValidateAddress(donorAddress)
	if err != nil {
		return nil, "", err
	}
	if lamports == 0 {
		return nil, "", errs.ErrAmountTooSmall
	}

	var campaign model.CampaignModel
	if err := d.db.First(&campaign, "id = ?", campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("众筹活动%w", errs.ErrNotFound)
		}
		return nil, "", err
	}
	if campaign.Status != model.CampaignStatusActive {
		return nil, "", errors.New("众筹活动不在进行中，无法接受捐赠")
	}

	creator, err := chain.ValidateAddress(campaign.CreatorAddress)
	if err != nil {
		return nil, "", err
	}

	tx, split, err := d.builder.Build(ctx, donor, creator, lamports)
	if err != nil {
		return nil, "", err
	}

	donation := &model.DonationModel{
		Id:            uuid.NewString(),
		CampaignId:    campaign.Id,
		DonorAddress:  donorAddress,
		Amount:        split.Total,
		PlatformFee:   split.PlatformFee,
		CreatorAmount: split.CreatorShare,
		Status:        model.DonationStatusPending,
	}
	if err := d.db.Create(donation).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create donation: %w", err)
	}

	txBase64, err := tx.ToBase64()
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode transaction: %w", err)
	}

	return donation, txBase64, nil
}

// Submit 代客户端提交已签名交易，记录返回的交易签名
func (d *DonationLogic) Submit(ctx context.Context, donationId, signedTxBase64 string) (*model.DonationModel, error) {
	donation, err := d.getDonation(donationId)
	if err != nil {
		return nil, err
	}
	if donation.Status != model.DonationStatusPending {
		return nil, errors.New("捐赠已进入终态，无法提交交易")
	}

	txSignature, err := d.ledger.SubmitTransaction(ctx, signedTxBase64)
	if err != nil {
		return nil, err
	}

	err = d.db.Model(&model.DonationModel{}).
		Where("id = ? AND status = ?", donation.Id, model.DonationStatusPending).
		Update("tx_signature", txSignature).Error
	if err != nil {
		return nil, err
	}

	donation.TxSignature = txSignature
	return donation, nil
}

// Confirm 对照链上状态结算捐赠
// pending → confirmed/failed，终态不可变；重复调用幂等，活动金额只累加一次
func (d *DonationLogic) Confirm(ctx context.Context, donationId, txSignature string) (*model.DonationModel, error) {
	// 幂等短路：该交易签名已有确认记录则直接返回
	if txSignature != "" {
		var existing model.DonationModel
		err := d.db.Where("tx_signature = ? AND status = ?", txSignature, model.DonationStatusConfirmed).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	donation, err := d.locateDonation(donationId, txSignature)
	if err != nil {
		return nil, err
	}

	// 终态不可变，重复确认是空操作
	if donation.Status != model.DonationStatusPending {
		return donation, nil
	}

	ref := txSignature
	if ref == "" {
		ref = donation.TxSignature
	}
	if ref == "" {
		return nil, errs.ErrNotYetObserved
	}

	status, err := d.ledger.GetTransaction(ctx, ref)
	if err != nil {
		// 链上尚未观察到或临时不可用都不改变本地状态，由调用方轮询
		return nil, err
	}

	if !status.Succeeded() {
		if err := d.transitionToFailed(donation.Id, ref); err != nil {
			return nil, err
		}
		logger.Warn("Donation %s failed on chain: %v", donation.Id, status.Err)
		return d.getDonation(donation.Id)
	}

	if err := d.transitionToConfirmed(donation, ref); err != nil {
		return nil, err
	}
	return d.getDonation(donation.Id)
}

// transitionToConfirmed 确认捐赠并累加活动统计
// 状态迁移是单条条件更新，只有真正完成 pending→confirmed 迁移的那次调用才会累加，
// 活动金额用数据库端原子加法，杜绝并发确认下的丢失更新
func (d *DonationLogic) transitionToConfirmed(donation *model.DonationModel, txSignature string) error {
	now := time.Now()
	return d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.DonationModel{}).
			Where("id = ? AND status = ?", donation.Id, model.DonationStatusPending).
			Updates(map[string]interface{}{
				"status":       model.DonationStatusConfirmed,
				"confirmed_at": now,
				"tx_signature": txSignature,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 输给了并发的确认调用，对方负责累加
			return nil
		}

		err := tx.Model(&model.CampaignModel{}).
			Where("id = ?", donation.CampaignId).
			Updates(map[string]interface{}{
				"raised_amount":  gorm.Expr("raised_amount + ?", donation.Amount),
				"donation_count": gorm.Expr("donation_count + ?", 1),
			}).Error
		if err != nil {
			return err
		}

		logger.Info("Donation %s confirmed, campaign %s raised +%d lamports",
			donation.Id, donation.CampaignId, donation.Amount)
		return nil
	})
}

// transitionToFailed 将捐赠置为失败终态
func (d *DonationLogic) transitionToFailed(donationId, txSignature string) error {
	return d.db.Model(&model.DonationModel{}).
		Where("id = ? AND status = ?", donationId, model.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":       model.DonationStatusFailed,
			"tx_signature": txSignature,
		}).Error
}

// ExpireStale 将超过时限仍为pending的捐赠批量置为失败
// 捐赠者可能签名后从未广播，没有这个兜底这些记录会永远pending
func (d *DonationLogic) ExpireStale(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := d.db.Model(&model.DonationModel{}).
		Where("status = ? AND created_at < ?", model.DonationStatusPending, cutoff).
		Update("status", model.DonationStatusFailed)
	return res.RowsAffected, res.Error
}

// GetDonation 获取单条捐赠记录
func (d *DonationLogic) GetDonation(donationId string) (*model.DonationModel, error) {
	return d.getDonation(donationId)
}

// GetPendingWithReference 获取已有交易签名的pending捐赠，供后台确认扫描使用
func (d *DonationLogic) GetPendingWithReference(limit int) ([]model.DonationModel, error) {
	var donations []model.DonationModel
	err := d.db.Where("status = ? AND tx_signature IS NOT NULL AND tx_signature != ''",
		model.DonationStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&donations).Error
	return donations, err
}

// GetCampaignDonations 分页获取活动捐赠记录
func (d *DonationLogic) GetCampaignDonations(campaignId string, page, pageSize int) ([]model.DonationModel, int64, error) {
	var donations []model.DonationModel
	var total int64

	// 获取总数
	if err := d.db.Model(&model.DonationModel{}).Where("campaign_id = ?", campaignId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := d.db.Where("campaign_id = ?", campaignId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, total, nil
}

func (d *DonationLogic) getDonation(donationId string) (*model.DonationModel, error) {
	var donation model.DonationModel
	if err := d.db.First(&donation, "id = ?", donationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("捐赠记录%w", errs.ErrNotFound)
		}
		return nil, err
	}
	return &donation, nil
}

// locateDonation 按id优先定位捐赠，找不到时回退到交易签名
func (d *DonationLogic) locateDonation(donationId, txSignature string) (*model.DonationModel, error) {
	if donationId != "" {
		donation, err := d.getDonation(donationId)
		if err == nil {
			return donation, nil
		}
		if txSignature == "" {
			return nil, err
		}
	}
	if txSignature == "" {
		return nil, fmt.Errorf("捐赠记录%w", errs.ErrNotFound)
	}

	var donation model.DonationModel
	if err := d.db.Where("tx_signature = ?", txSignature).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("捐赠记录%w", errs.ErrNotFound)
		}
		return nil, err
	}
	return &donation, nil
}
