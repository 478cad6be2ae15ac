package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/lamport"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 众筹活动处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	donationLogic *logic.DonationLogic
}

// NewCampaignHandler 创建众筹活动处理器
func NewCampaignHandler(db *gorm.DB, cfg *config.Config, donationLogic *logic.DonationLogic) *CampaignHandler {
	challengeLogic := logic.NewChallengeLogic(db, cfg)
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db, challengeLogic),
		donationLogic: donationLogic,
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	// 金额以十进制字符串传输，入口处立即转换为lamports
	goalLamports, err := lamport.ToLamports(req.GoalAmount)
	if err != nil {
		HandleError(c, err)
		return
	}

	campaign := &model.CampaignModel{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Category:       req.Category,
		GoalAmount:     goalLamports,
		Deadline:       req.Deadline,
		CreatorAddress: req.CreatorAddress,
		CreatorName:    req.CreatorName,
	}

	// 调用logic层创建活动
	if err := h.campaignLogic.CreateCampaign(campaign); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": toCampaignResponse(campaign),
	})
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	status := c.Query("status")

	campaigns, total, err := h.campaignLogic.GetCampaigns(status, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		responses = append(responses, toCampaignResponse(&campaigns[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": responses,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignLogic.GetCampaign(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": toCampaignResponse(campaign),
	})
}

// CancelCampaign 取消活动
func (h *CampaignHandler) CancelCampaign(c *gin.Context) {
	if err := h.campaignLogic.CancelCampaign(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "活动已取消",
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	stats, err := h.campaignLogic.GetCampaignStats(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetCampaignDonations 获取活动捐赠记录
func (h *CampaignHandler) GetCampaignDonations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	donations, total, err := h.donationLogic.GetCampaignDonations(c.Param("id"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		responses = append(responses, toDonationResponse(&donations[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": responses,
		"pagination": gin.H{
			"page":       page,
			"page_size":  pageSize,
			"total":      total,
			"total_page": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// toCampaignResponse 金额转回十进制SOL字符串，避免JSON数字精度丢失
func toCampaignResponse(campaign *model.CampaignModel) CampaignResponse {
	return CampaignResponse{
		ID:             campaign.Id,
		Title:          campaign.Title,
		Description:    campaign.Description,
		ImageURL:       campaign.ImageURL,
		Category:       campaign.Category,
		CreatorAddress: campaign.CreatorAddress,
		CreatorName:    campaign.CreatorName,
		GoalAmount:     lamport.ToSOL(campaign.GoalAmount),
		RaisedAmount:   lamport.ToSOL(campaign.RaisedAmount),
		DonationCount:  campaign.DonationCount,
		Status:         string(campaign.Status),
		Deadline:       campaign.Deadline,
		CreatedAt:      campaign.CreatedAt,
		UpdatedAt:      campaign.UpdatedAt,
	}
}
