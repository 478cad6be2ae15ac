package main

import (
	"github.com/blues/scf/internal/chain"
	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/database"
	"github.com/blues/scf/internal/logger"
	"github.com/blues/scf/internal/logic"
	"github.com/blues/scf/internal/ratelimit"
	"github.com/blues/scf/internal/router"
	"github.com/blues/scf/internal/task"
	"github.com/blues/scf/internal/transfer"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化Solana客户端
	chainClient, err := chain.Init(cfg.Solana)
	if err != nil {
		logger.Fatal("Failed to initialize solana client: %v", err)
	}

	// 初始化交易构造器，平台手续费配置错误在启动时就失败
	builder, err := transfer.NewBuilder(chainClient, cfg.Platform)
	if err != nil {
		logger.Fatal("Failed to initialize transfer builder: %v", err)
	}

	// 初始化业务逻辑
	donationLogic := logic.NewDonationLogic(db, builder, chainClient)
	challengeLogic := logic.NewChallengeLogic(db, cfg)

	// 初始化限流器
	var limiter *ratelimit.Limiter
	if cfg.Redis.Enabled {
		limiter = ratelimit.NewLimiter(cfg.Redis, cfg.RateLimit)
		defer limiter.Close()
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, donationLogic, limiter, cfg)

	// 启动定时任务
	manager := task.Start(db, donationLogic, challengeLogic, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
