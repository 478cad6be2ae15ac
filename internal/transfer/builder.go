package transfer

import (
	"context"
	"fmt"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/blues/scf/internal/fee"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// BlockhashProvider 提供交易锚定用的最新finalized区块哈希
type BlockhashProvider interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// Builder 未签名捐赠交易构造器
// 只组装转账指令，不持有也不请求任何私钥，签名由客户端钱包完成
type Builder struct {
	provider   BlockhashProvider
	feeAddress solana.PublicKey
	feeRate    uint64
	feeEnabled bool
}

// NewBuilder 创建交易构造器
// 启用手续费时平台地址不能是零地址、费率不能超过100，这是部署配置错误而非用户错误
func NewBuilder(provider BlockhashProvider, cfg config.PlatformConfig) (*Builder, error) {
	b := &Builder{
		provider:   provider,
		feeRate:    cfg.FeeRate,
		feeEnabled: cfg.FeeEnabled,
	}

	if cfg.FeeEnabled {
		if cfg.FeeRate > 100 {
			return nil, fmt.Errorf("%w: fee_rate=%d", errs.ErrConfiguration, cfg.FeeRate)
		}
		feeAddress, err := solana.PublicKeyFromBase58(cfg.FeeAddress)
		if err != nil || feeAddress.IsZero() {
			return nil, fmt.Errorf("%w: fee_address=%q", errs.ErrConfiguration, cfg.FeeAddress)
		}
		b.feeAddress = feeAddress
	}

	return b, nil
}

// Split 计算一笔捐赠的手续费拆分
func (b *Builder) Split(total uint64) fee.Split {
	if !b.feeEnabled {
		return fee.Split{Total: total, CreatorShare: total}
	}
	return fee.Calculate(total, b.feeRate)
}

// Build 构造未签名的捐赠转账交易，费用支付方为捐赠者本人
// 手续费为0时不生成平台转账指令，链上会拒绝零金额转账
func (b *Builder) Build(ctx context.Context, donor, creator solana.PublicKey, lamports uint64) (*solana.Transaction, fee.Split, error) {
	split := b.Split(lamports)
	if split.CreatorShare == 0 {
		return nil, split, errs.ErrAmountTooSmall
	}

	blockhash, err := b.provider.LatestBlockhash(ctx)
	if err != nil {
		return nil, split, err
	}

	instructions := []solana.Instruction{
		system.NewTransferInstruction(split.CreatorShare, donor, creator).Build(),
	}
	if split.PlatformFee > 0 {
		instructions = append(instructions,
			system.NewTransferInstruction(split.PlatformFee, donor, b.feeAddress).Build())
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(donor))
	if err != nil {
		return nil, split, fmt.Errorf("failed to build transaction: %w", err)
	}

	return tx, split, nil
}
