package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/blues/scf/internal/config"
	"github.com/blues/scf/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Limiter 基于redis计数器的固定窗口限流器
// 多实例部署共享同一份计数，不能用进程内map
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter 创建限流器
func NewLimiter(redisCfg config.RedisConfig, cfg config.RateLimitConfig) *Limiter {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	return &Limiter{
		client: client,
		limit:  cfg.Limit,
		window: time.Duration(cfg.WindowSeconds) * time.Second,
	}
}

// Allow 递增计数并判断是否放行
// INCR和首次EXPIRE在同一管线中执行，窗口到期后计数自动清零
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := incr.Val()
	if count > int64(l.limit) {
		logger.Warn("Rate limit exceeded for %s (%d/%d)", key, count, l.limit)
		return false, nil
	}
	return true, nil
}

// Close 关闭redis连接
func (l *Limiter) Close() error {
	return l.client.Close()
}
