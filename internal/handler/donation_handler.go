package handler

import (
	"net/http"

	"github.com/blues/scf/internal/lamport"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/model"
	"github.com/gin-gonic/gin"
)

// DonationHandler 捐赠处理器
type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

// NewDonationHandler 创建捐赠处理器
func NewDonationHandler(donationLogic *logic.DonationLogic) *DonationHandler {
	return &DonationHandler{
		donationLogic: donationLogic,
	}
}

// CreateDonation 创建捐赠并返回待签名交易
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	// 金额以十进制字符串传输，入口处立即转换为lamports
	lamports, err := lamport.ToLamports(req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}

	donation, unsignedTx, err := h.donationLogic.CreatePending(c.Request.Context(), req.CampaignID, req.DonorAddress, lamports)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": CreateDonationResponse{
			Donation:   toDonationResponse(donation),
			UnsignedTx: unsignedTx,
		},
	})
}

// SubmitDonation 提交已签名交易
func (h *DonationHandler) SubmitDonation(c *gin.Context) {
	var req SubmitDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	donation, err := h.donationLogic.Submit(c.Request.Context(), c.Param("id"), req.SignedTx)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toDonationResponse(donation),
	})
}

// ConfirmDonation 对照链上状态确认捐赠，可重复调用
func (h *DonationHandler) ConfirmDonation(c *gin.Context) {
	var req ConfirmDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	donation, err := h.donationLogic.Confirm(c.Request.Context(), c.Param("id"), req.TxSignature)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toDonationResponse(donation),
	})
}

// GetDonation 获取捐赠详情
func (h *DonationHandler) GetDonation(c *gin.Context) {
	donation, err := h.donationLogic.GetDonation(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toDonationResponse(donation),
	})
}

// toDonationResponse 金额转回十进制SOL字符串
func toDonationResponse(donation *model.DonationModel) DonationResponse {
	return DonationResponse{
		ID:            donation.Id,
		CampaignID:    donation.CampaignId,
		DonorAddress:  donation.DonorAddress,
		Amount:        lamport.ToSOL(donation.Amount),
		PlatformFee:   lamport.ToSOL(donation.PlatformFee),
		CreatorAmount: lamport.ToSOL(donation.CreatorAmount),
		TxSignature:   donation.TxSignature,
		Status:        string(donation.Status),
		CreatedAt:     donation.CreatedAt,
		ConfirmedAt:   donation.ConfirmedAt,
	}
}
