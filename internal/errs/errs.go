package errs

import "errors"

// 核心业务错误，handler 层通过 errors.Is 映射为 HTTP 状态码
var (
	// 用户输入错误
	ErrFormat         = errors.New("输入格式不正确")
	ErrInvalidAddress = errors.New("无效的钱包地址")
	ErrAmountTooSmall = errors.New("扣除平台手续费后捐赠金额过小")

	// 资源不存在，包装时带上实体名，如 fmt.Errorf("捐赠记录%w", errs.ErrNotFound)
	ErrNotFound = errors.New("不存在")

	// 平台配置错误
	ErrConfiguration = errors.New("平台手续费配置错误")

	// 挑战验证错误，统一提示用户重新获取挑战
	ErrChallengeInvalid  = errors.New("挑战不存在或已过期，请重新获取")
	ErrChallengeMismatch = errors.New("挑战与钱包地址不匹配")
	ErrChallengeUsed     = errors.New("挑战已被使用，请重新获取")
	ErrSignatureInvalid  = errors.New("签名验证失败")
	ErrWalletNotVerified = errors.New("钱包未验证或验证已过期，请先完成钱包验证")

	// 外部依赖错误
	ErrLedgerUnavailable = errors.New("链上服务暂时不可用，请稍后重试")

	// 非错误状态：交易已提交但链上尚未观察到，调用方应轮询重试
	ErrNotYetObserved = errors.New("交易尚未确认，请稍后查询")
)
