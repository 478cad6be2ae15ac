package fee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	// 1.5 SOL按2%拆分
	split := Calculate(1_500_000_000, 2)
	assert.Equal(t, uint64(1_500_000_000), split.Total)
	assert.Equal(t, uint64(30_000_000), split.PlatformFee)
	assert.Equal(t, uint64(1_470_000_000), split.CreatorShare)
}

func TestCalculateInvariant(t *testing.T) {
	// 任意金额与费率下 PlatformFee + CreatorShare == Total 恒成立
	totals := []uint64{
		0, 1, 2, 3, 33, 99, 100, 101, 999, 1_000_000_000,
		1_500_000_000, 98_765_432_101, math.MaxUint64, math.MaxUint64 - 1,
	}
	for _, total := range totals {
		for rate := uint64(0); rate <= 100; rate++ {
			split := Calculate(total, rate)
			assert.Equal(t, total, split.PlatformFee+split.CreatorShare,
				"total=%d rate=%d", total, rate)
		}
	}
}

func TestCalculateTruncation(t *testing.T) {
	// 除不尽时手续费向下取整，差额归创建者
	split := Calculate(101, 2)
	assert.Equal(t, uint64(2), split.PlatformFee)
	assert.Equal(t, uint64(99), split.CreatorShare)

	split = Calculate(33, 10)
	assert.Equal(t, uint64(3), split.PlatformFee)
	assert.Equal(t, uint64(30), split.CreatorShare)
}

func TestCalculateEdgeRates(t *testing.T) {
	// 费率0时全部归创建者
	split := Calculate(1_000, 0)
	assert.Equal(t, uint64(0), split.PlatformFee)
	assert.Equal(t, uint64(1_000), split.CreatorShare)

	// 费率100时全部归平台
	split = Calculate(1_000, 100)
	assert.Equal(t, uint64(1_000), split.PlatformFee)
	assert.Equal(t, uint64(0), split.CreatorShare)
}

func TestCalculateOverflowSafe(t *testing.T) {
	// 大金额不会因乘法溢出算错
	// floor(18446744073709551615 * 2 / 100) = 368934881474191032
	split := Calculate(math.MaxUint64, 2)
	assert.Equal(t, uint64(368_934_881_474_191_032), split.PlatformFee)
	assert.Equal(t, split.Total-split.PlatformFee, split.CreatorShare)
}
