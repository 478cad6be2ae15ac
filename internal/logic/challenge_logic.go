package logic

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const challengeMessagePrefix = "SCF Wallet Verification"

// ChallengeLogic 钱包所有权验证业务逻辑
type ChallengeLogic struct {
	db              *gorm.DB
	challengeTTL    time.Duration
	verificationTTL time.Duration
}

// NewChallengeLogic 创建钱包验证业务逻辑
func NewChallengeLogic(db *gorm.DB, cfg *config.Config) *ChallengeLogic {
	return &ChallengeLogic{
		db:              db,
		challengeTTL:    time.Duration(cfg.Challenge.TTLMinutes) * time.Minute,
		verificationTTL: time.Duration(cfg.Verification.TTLHours) * time.Hour,
	}
}

// IssueChallenge 为指定地址签发一次性验证挑战
// 同一地址允许多个未消费的挑战并存，客户端超时后可直接重新获取
func (c *ChallengeLogic) IssueChallenge(address string) (*model.ChallengeModel, error) {
	if _, err := chain.ValidateAddress(address); err != nil {
		return nil, err
	}

	nonce, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now()
	challenge := &model.ChallengeModel{
		Nonce:     nonce,
		Address:   address,
		Message:   buildChallengeMessage(address, nonce, now),
		ExpiresAt: now.Add(c.challengeTTL),
	}

	if err := c.db.Create(challenge).Error; err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return challenge, nil
}

// Verify 验证挑战签名，成功后写入钱包验证记录
// 先原子消费nonce再做签名校验：并发重放的败者在签名计算前就会被拒绝
func (c *ChallengeLogic) Verify(address, message, signature string) (*model.WalletVerificationModel, error) {
	// 1. 地址必须是合法的曲线上公钥
	pubkey, err := chain.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	// 2. 消息必须包含声称的地址，防止消息替换
	if !strings.Contains(message, address) {
		return nil, errs.ErrChallengeMismatch
	}

	// 3. 从消息中提取nonce并检查挑战状态
	nonce := extractNonce(message)
	if nonce == "" {
		return nil, errs.ErrChallengeInvalid
	}

	var challenge model.ChallengeModel
	if err := c.db.Where("nonce = ?", nonce).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrChallengeInvalid
		}
		return nil, err
	}
	if challenge.UsedAt != nil || time.Now().After(challenge.ExpiresAt) {
		return nil, errs.ErrChallengeInvalid
	}

	// 4. 挑战归属地址必须与声称地址一致
	if challenge.Address != address {
		return nil, errs.ErrChallengeMismatch
	}

	// 5. 原子消费：单条条件更新，输掉并发竞争时影响行数为0
	now := time.Now()
	res := c.db.Model(&model.ChallengeModel{}).
		Where("nonce = ? AND used_at IS NULL", nonce).
		Update("used_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrChallengeUsed
	}

	// 6. 按消息原文字节做ed25519签名校验
	if err := chain.VerifySignature(pubkey, []byte(message), signature); err != nil {
		return nil, err
	}

	// 7. 写入验证记录，同地址原地覆盖并刷新有效期
	verification := &model.WalletVerificationModel{
		Address:    address,
		Message:    message,
		Signature:  signature,
		VerifiedAt: now,
		ExpiresAt:  now.Add(c.verificationTTL),
	}
	err = c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "signature", "verified_at", "expires_at", "updated_at"}),
	}).Create(verification).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save wallet verification: %w", err)
	}

	logger.Info("Wallet %s verified successfully", address)
	return verification, nil
}

// GetVerification 获取地址当前有效的验证记录
func (c *ChallengeLogic) GetVerification(address string) (*model.WalletVerificationModel, error) {
	var verification model.WalletVerificationModel
	err := c.db.Where("address = ? AND expires_at > ?", address, time.Now()).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotVerified
		}
		return nil, err
	}
	return &verification, nil
}

// CleanupExpired 删除已过期的挑战记录
func (c *ChallengeLogic) CleanupExpired() (int64, error) {
	res := c.db.Where("expires_at < ?", time.Now()).Delete(&model.ChallengeModel{})
	return res.RowsAffected, res.Error
}

// buildChallengeMessage 生成供钱包签名的可读消息
func buildChallengeMessage(address, nonce string, issuedAt time.Time) string {
	return fmt.Sprintf("%s\nAddress: %s\nNonce: %s\nIssued At: %s",
		challengeMessagePrefix, address, nonce, issuedAt.UTC().Format(time.RFC3339))
}

// extractNonce 从消息文本中提取nonce
func extractNonce(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if rest, ok := strings.CutPrefix(line, "Nonce: "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// generateNonce 生成32字节随机nonce
func generateNonce() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
