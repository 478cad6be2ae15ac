package handler

import (
	"time"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 钱包验证相关请求模型

// IssueChallengeRequest 获取挑战请求
type IssueChallengeRequest struct {
	Address string `json:"address" binding:"required"`
}

// VerifyChallengeRequest 验证挑战请求
type VerifyChallengeRequest struct {
	Address   string `json:"address" binding:"required"`
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// ChallengeResponse 挑战响应模型
type ChallengeResponse struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerificationResponse 验证记录响应模型
type VerificationResponse struct {
	Address    string    `json:"address"`
	VerifiedAt time.Time `json:"verifiedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// 活动相关请求模型

// CreateCampaignRequest 创建活动请求，金额以十进制SOL字符串传输
type CreateCampaignRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"imageUrl"`
	Category       string    `json:"category"`
	GoalAmount     string    `json:"goalAmount" binding:"required"`
	Deadline       time.Time `json:"deadline" binding:"required"`
	CreatorAddress string    `json:"creatorAddress" binding:"required"`
	CreatorName    string    `json:"creatorName"`
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"imageUrl"`
	Category       string    `json:"category"`
	CreatorAddress string    `json:"creatorAddress"`
	CreatorName    string    `json:"creatorName"`
	GoalAmount     string    `json:"goalAmount"`
	RaisedAmount   string    `json:"raisedAmount"`
	DonationCount  int64     `json:"donationCount"`
	Status         string    `json:"status"`
	Deadline       time.Time `json:"deadline"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// 捐赠相关请求模型

// CreateDonationRequest 创建捐赠请求
type CreateDonationRequest struct {
	CampaignID   string `json:"campaignId" binding:"required"`
	DonorAddress string `json:"donorAddress" binding:"required"`
	Amount       string `json:"amount" binding:"required"` // 十进制SOL字符串
}

// SubmitDonationRequest 提交已签名交易请求
type SubmitDonationRequest struct {
	SignedTx string `json:"signedTx" binding:"required"` // base64编码
}

// ConfirmDonationRequest 确认捐赠请求
type ConfirmDonationRequest struct {
	TxSignature string `json:"txSignature"`
}

// DonationResponse 捐赠响应模型
type DonationResponse struct {
	ID            string     `json:"id"`
	CampaignID    string     `json:"campaignId"`
	DonorAddress  string     `json:"donorAddress"`
	Amount        string     `json:"amount"`
	PlatformFee   string     `json:"platformFee"`
	CreatorAmount string     `json:"creatorAmount"`
	TxSignature   string     `json:"txSignature,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
}

// CreateDonationResponse 创建捐赠响应，附带待签名交易
type CreateDonationResponse struct {
	Donation   DonationResponse `json:"donation"`
	UnsignedTx string           `json:"unsignedTx"` // base64编码，由客户端钱包签名
}
