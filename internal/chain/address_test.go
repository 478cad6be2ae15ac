package chain

import (
	"testing"

	"github.com/blues/scf/internal/errs"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	priv, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	pubkey, err := ValidateAddress(priv.PublicKey().String())
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey(), pubkey)
}

func TestValidateAddressRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not-base58-0OIl",
		"abc",
	}
	for _, address := range cases {
		_, err := ValidateAddress(address)
		assert.ErrorIs(t, err, errs.ErrInvalidAddress, "address=%q", address)
	}
}

func TestVerifySignature(t *testing.T) {
	priv, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	message := []byte("hello solana")

	sig, err := priv.Sign(message)
	require.NoError(t, err)

	assert.NoError(t, VerifySignature(priv.PublicKey(), message, sig.String()))

	// 消息被篡改
	err = VerifySignature(priv.PublicKey(), []byte("hello so1ana"), sig.String())
	assert.ErrorIs(t, err, errs.ErrSignatureInvalid)

	// 签名不是合法base58
	err = VerifySignature(priv.PublicKey(), message, "%%%")
	assert.ErrorIs(t, err, errs.ErrSignatureInvalid)

	// 别人的公钥
	other, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	err = VerifySignature(other.PublicKey(), message, sig.String())
	assert.ErrorIs(t, err, errs.ErrSignatureInvalid)
}
