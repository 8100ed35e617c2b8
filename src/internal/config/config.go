// Package config 從 .env 與環境變數載入設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務設定
type Config struct {
	AppPort  string
	LogLevel string

	// 資料庫
	DBDriver    string // sqlite | postgres
	DatabaseURL string

	// Redis（空白時不限流）
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// 兌換限流：每個使用者在 RedeemRateWindow 內最多 RedeemRateLimit 次
	RedeemRateLimit  int
	RedeemRateWindow time.Duration

	// 兌換後動作的執行時限
	ActionTimeout time.Duration

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// Load 載入設定；.env 不存在時只讀環境變數
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv 從查詢函數讀取設定（測試時可傳入 map）
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppPort:       stringOr(getenv("APP_PORT"), "8080"),
		LogLevel:      stringOr(getenv("LOG_LEVEL"), "info"),
		DBDriver:      strings.ToLower(stringOr(getenv("DB_DRIVER"), "sqlite")),
		DatabaseURL:   stringOr(getenv("DATABASE_URL"), "file:channel_points.db"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.RedisDB, err = intOr(getenv, "REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RedeemRateLimit, err = intOr(getenv, "REDEEM_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.RedeemRateWindow, err = durationOr(getenv, "REDEEM_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.ActionTimeout, err = durationOr(getenv, "ACTION_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationOr(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.RedeemRateLimit <= 0 {
		return nil, fmt.Errorf("REDEEM_RATE_LIMIT must be positive, got %d", cfg.RedeemRateLimit)
	}

	return cfg, nil
}

// Addr HTTP 監聽位址
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func intOr(getenv func(string) string, key string, fallback int) (int, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// durationOr 接受 time.ParseDuration 格式，或純數字（秒）
func durationOr(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
