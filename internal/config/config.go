package config

import (
	"github.com/blues/scf/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Solana       SolanaConfig       `mapstructure:"solana"`
	Platform     PlatformConfig     `mapstructure:"platform"`
	Challenge    ChallengeConfig    `mapstructure:"challenge"`
	Verification VerificationConfig `mapstructure:"verification"`
	Donation     DonationConfig     `mapstructure:"donation"`
	Task         TaskConfig         `mapstructure:"task"`
	Redis        RedisConfig        `mapstructure:"redis"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SolanaConfig Solana链配置
type SolanaConfig struct {
	RpcUrl         string `mapstructure:"rpc_url"`         // RPC节点URL
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 单次RPC调用超时（秒）
}

// PlatformConfig 平台手续费配置
type PlatformConfig struct {
	FeeAddress string `mapstructure:"fee_address"` // 平台手续费收款地址
	FeeRate    uint64 `mapstructure:"fee_rate"`    // 手续费率分子（整数，每100）
	FeeEnabled bool   `mapstructure:"fee_enabled"` // 是否收取手续费
}

// ChallengeConfig 钱包验证挑战配置
type ChallengeConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"` // 挑战有效期（分钟）
}

// VerificationConfig 钱包验证记录配置
type VerificationConfig struct {
	TTLHours int `mapstructure:"ttl_hours"` // 验证记录有效期（小时）
}

// DonationConfig 捐赠结算配置
type DonationConfig struct {
	StaleMinutes int `mapstructure:"stale_minutes"` // pending捐赠超时时间（分钟）
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

// RedisConfig 限流共享存储配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig 挑战接口限流配置
type RateLimitConfig struct {
	Limit         int `mapstructure:"limit"`          // 窗口内最大请求数
	WindowSeconds int `mapstructure:"window_seconds"` // 窗口大小（秒）
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/scf")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("solana.rpc_url", "https://api.devnet.solana.com")
	viper.SetDefault("solana.timeout_seconds", 15)
	viper.SetDefault("platform.fee_rate", 2)
	viper.SetDefault("platform.fee_enabled", true)
	viper.SetDefault("challenge.ttl_minutes", 5)
	viper.SetDefault("verification.ttl_hours", 720)
	viper.SetDefault("donation.stale_minutes", 10)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("rate_limit.limit", 10)
	viper.SetDefault("rate_limit.window_seconds", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
