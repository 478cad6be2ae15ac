package chain

import (
	"fmt"

	"github.com/blues/scf/internal/errs"
	"github.com/gagliardetto/solana-go"
)

// ValidateAddress 校验base58地址格式且必须落在ed25519曲线上
// 链下程序地址（PDA）不在曲线上，不能作为签名者
func ValidateAddress(address string) (solana.PublicKey, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %s", errs.ErrInvalidAddress, address)
	}
	if !pubkey.IsOnCurve() {
		return solana.PublicKey{}, fmt.Errorf("%w: 地址不在ed25519曲线上", errs.ErrInvalidAddress)
	}
	return pubkey, nil
}

// VerifySignature 用账户公钥校验消息的ed25519签名
func VerifySignature(pubkey solana.PublicKey, message []byte, signatureBase58 string) error {
	sig, err := solana.SignatureFromBase58(signatureBase58)
	if err != nil {
		return fmt.Errorf("%w: 签名格式不正确", errs.ErrSignatureInvalid)
	}
	if !sig.Verify(pubkey, message) {
		return errs.ErrSignatureInvalid
	}
	return nil
}
