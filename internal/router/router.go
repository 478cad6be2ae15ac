package router

import (
	"net/http"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/handler"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, donationLogic *logic.DonationLogic, limiter *ratelimit.Limiter, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "sol-crowdfunding-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 钱包验证相关路由，签发挑战接口按客户端IP限流
		walletHandler := handler.NewWalletHandler(db, cfg)
		wallet := v1.Group("/wallet")
		{
			wallet.POST("/challenge", rateLimitMiddleware(limiter), walletHandler.IssueChallenge)
			wallet.POST("/verify", walletHandler.VerifyChallenge)
			wallet.GET("/:address/verification", walletHandler.GetVerification)
		}

		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(db, cfg, donationLogic)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("/:id/cancel", campaignHandler.CancelCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:id/donations", campaignHandler.GetCampaignDonations)
		}

		// 捐赠相关路由
		donationHandler := handler.NewDonationHandler(donationLogic)
		donations := v1.Group("/donations")
		{
			donations.POST("", donationHandler.CreateDonation)
			donations.GET("/:id", donationHandler.GetDonation)
			donations.POST("/:id/submit", donationHandler.SubmitDonation)
			donations.POST("/:id/confirm", donationHandler.ConfirmDonation)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// 限流中间件，limiter为nil时直接放行
func rateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// 限流存储不可用时放行，不阻塞正常请求
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后重试"})
			return
		}

		c.Next()
	}
}
