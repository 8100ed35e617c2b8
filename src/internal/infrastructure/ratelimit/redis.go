// Package ratelimit 以 Redis 實作的固定視窗限流
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Limiter 固定視窗限流器
//
// key 格式：rl:<window_seconds>:<identifier>
// Redis 未設定或出錯時放行（fail-open），限流只是保護措施，不影響帳本正確性。
type Limiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

// NewLimiter 建立限流器；client 為 nil 時所有請求放行
func NewLimiter(client *redis.Client, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{client: client, maxRequests: maxRequests, window: window}
}

// Connect 建立 Redis 連線並 ping；addr 為空或 ping 失敗時返回 nil client
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Allow 判斷 ident 是否還在額度內
//
// 返回的 error 只用於記錄；發生錯誤時 allowed 一律為 true。
func (l *Limiter) Allow(ctx context.Context, ident string) (allowed bool, err error) {
	if l == nil || l.client == nil || l.maxRequests <= 0 {
		return true, nil
	}

	key := "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("expire %s: %w", key, err)
		}
	}

	return count <= int64(l.maxRequests), nil
}
