package lamport

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/blues/scf/internal/errs"
)

// Decimals SOL的小数位数，1 SOL = 10^9 lamports
const Decimals = 9

// PerSOL 1 SOL对应的lamports数量
const PerSOL uint64 = 1_000_000_000

var maxLamports = new(big.Int).SetUint64(math.MaxUint64)

// ToLamports 将十进制SOL金额字符串转换为lamports整数
// 通过字符串拼接避免浮点乘法带来的精度误差，超过9位的小数部分截断不进位
func ToLamports(amount string) (uint64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, fmt.Errorf("%w: 金额为空", errs.ErrFormat)
	}
	if s[0] == '+' {
		s = s[1:]
	}
	if s == "" || s[0] == '-' {
		return 0, fmt.Errorf("%w: %s", errs.ErrFormat, amount)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %s", errs.ErrFormat, amount)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return 0, fmt.Errorf("%w: %s", errs.ErrFormat, amount)
	}

	// 小数部分补齐或截断为9位
	if len(frac) > Decimals {
		frac = frac[:Decimals]
	} else {
		frac = frac + strings.Repeat("0", Decimals-len(frac))
	}

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errs.ErrFormat, amount)
	}
	if n.Cmp(maxLamports) > 0 {
		return 0, fmt.Errorf("%w: 金额超出范围", errs.ErrFormat)
	}

	return n.Uint64(), nil
}

// ToSOL 将lamports整数转换为十进制SOL金额字符串
func ToSOL(lamports uint64) string {
	whole := lamports / PerSOL
	frac := lamports % PerSOL
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	s := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
