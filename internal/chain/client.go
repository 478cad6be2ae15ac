package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/errs"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client Solana链客户端，所有查询使用finalized承诺级别
type Client struct {
	rpcClient *rpc.Client
	timeout   time.Duration
}

// TransactionStatus 链上交易查询结果
type TransactionStatus struct {
	Slot      uint64      `json:"slot"`
	Err       interface{} `json:"err"` // 链上执行错误，nil表示成功
	BlockTime *time.Time  `json:"block_time"`
}

// Succeeded 交易是否成功上链
func (s *TransactionStatus) Succeeded() bool {
	return s.Err == nil
}

func Init(cfg config.SolanaConfig) (*Client, error) {
	if cfg.RpcUrl == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		rpcClient: rpc.New(cfg.RpcUrl),
		timeout:   timeout,
	}, nil
}

// LatestBlockhash 获取最新的finalized区块哈希
// 交易有效性锚定在finalized检查点上，降低因检查点失效被拒绝的概率
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("%w: %v", errs.ErrLedgerUnavailable, err)
	}
	return out.Value.Blockhash, nil
}

// GetTransaction 按交易签名查询链上交易
// 查询不到或超时都视为"尚未观察到"，由调用方退避轮询
func (c *Client) GetTransaction(ctx context.Context, txSignature string) (*TransactionStatus, error) {
	sig, err := solana.SignatureFromBase58(txSignature)
	if err != nil {
		return nil, fmt.Errorf("%w: 交易签名格式不正确", errs.ErrFormat)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	maxVersion := uint64(0)
	out, err := c.rpcClient.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Commitment:                     rpc.CommitmentFinalized,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) || errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.ErrNotYetObserved
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrLedgerUnavailable, err)
	}
	if out == nil {
		return nil, errs.ErrNotYetObserved
	}

	status := &TransactionStatus{Slot: out.Slot}
	if out.Meta != nil {
		status.Err = out.Meta.Err
	}
	if out.BlockTime != nil {
		t := out.BlockTime.Time()
		status.BlockTime = &t
	}
	return status, nil
}

// SubmitTransaction 提交已签名的base64编码交易，返回交易签名
func (c *Client) SubmitTransaction(ctx context.Context, signedTxBase64 string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sig, err := c.rpcClient.SendEncodedTransaction(ctx, signedTxBase64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrLedgerUnavailable, err)
	}
	return sig.String(), nil
}
