package handler

import (
	"net/http"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WalletHandler 钱包验证处理器
type WalletHandler struct {
	challengeLogic *logic.ChallengeLogic
}

// NewWalletHandler 创建钱包验证处理器
func NewWalletHandler(db *gorm.DB, cfg *config.Config) *WalletHandler {
	return &WalletHandler{
		challengeLogic: logic.NewChallengeLogic(db, cfg),
	}
}

// IssueChallenge 签发验证挑战
func (h *WalletHandler) IssueChallenge(c *gin.Context) {
	var req IssueChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	// 调用logic层签发挑战
	challenge, err := h.challengeLogic.IssueChallenge(req.Address)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ChallengeResponse{
			Nonce:     challenge.Nonce,
			Message:   challenge.Message,
			ExpiresAt: challenge.ExpiresAt,
		},
	})
}

// VerifyChallenge 验证挑战签名
func (h *WalletHandler) VerifyChallenge(c *gin.Context) {
	var req VerifyChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数不正确"})
		return
	}

	// 调用logic层验证签名
	verification, err := h.challengeLogic.Verify(req.Address, req.Message, req.Signature)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": VerificationResponse{
			Address:    verification.Address,
			VerifiedAt: verification.VerifiedAt,
			ExpiresAt:  verification.ExpiresAt,
		},
	})
}

// GetVerification 查询地址的有效验证记录
func (h *WalletHandler) GetVerification(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "钱包地址不能为空"})
		return
	}

	verification, err := h.challengeLogic.GetVerification(address)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": VerificationResponse{
			Address:    verification.Address,
			VerifiedAt: verification.VerifiedAt,
			ExpiresAt:  verification.ExpiresAt,
		},
	})
}
