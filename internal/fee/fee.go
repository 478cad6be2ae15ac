package fee

// Split 一笔捐赠的金额拆分结果
type Split struct {
	Total        uint64 `json:"total"`
	PlatformFee  uint64 `json:"platform_fee"`
	CreatorShare uint64 `json:"creator_share"`
}

// Calculate 按整数费率分子计算平台手续费拆分
// 手续费向下取整，创建者份额由减法得出，保证 PlatformFee + CreatorShare == Total 恒成立
// rateNumerator 取值范围为 [0, 100]，越界的费率在构造器初始化时已被拒绝
func Calculate(total uint64, rateNumerator uint64) Split {
	// 拆成商和余数两段计算，等价于 floor(total*rate/100) 且不会溢出
	platformFee := total/100*rateNumerator + total%100*rateNumerator/100
	return Split{
		Total:        total,
		PlatformFee:  platformFee,
		CreatorShare: total - platformFee,
	}
}
