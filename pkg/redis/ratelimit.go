package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window request counter kept in Redis (shared across processes)
// ⭐ SSOT: 외부 데이터 호출 한도는 여기서만
type RateLimiter struct {
	client *Client
	prefix string
	now    func() time.Time
}

// RateLimitConfig defines one quota
type RateLimitConfig struct {
	Key    string        // quota name, e.g. "market_data"
	Limit  int           // requests per window
	Window time.Duration // window length
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// windowKey returns the counter key and the time left in the current window
func (r *RateLimiter) windowKey(cfg RateLimitConfig) (string, time.Duration) {
	now := r.now()
	windowMs := cfg.Window.Milliseconds()
	if windowMs <= 0 {
		windowMs = 1
	}
	slot := now.UnixMilli() / windowMs
	resetIn := time.Duration((slot+1)*windowMs-now.UnixMilli()) * time.Millisecond
	return fmt.Sprintf("%s:ratelimit:%s:%d", r.prefix, cfg.Key, slot), resetIn
}

// Allow consumes one request from the current window.
// Returns (allowed, remaining, error); disabled Redis always allows.
func (r *RateLimiter) Allow(ctx context.Context, cfg RateLimitConfig) (bool, int, error) {
	if !r.client.Enabled() {
		return true, cfg.Limit, nil
	}

	key, _ := r.windowKey(cfg)
	pipe := r.client.Redis().TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit counter failed: %w", err)
	}

	count := int(incr.Val())
	if count > cfg.Limit {
		return false, 0, nil
	}
	return true, cfg.Limit - count, nil
}

// Wait blocks until the quota allows a request or ctx is done
func (r *RateLimiter) Wait(ctx context.Context, cfg RateLimitConfig) error {
	for {
		allowed, _, err := r.Allow(ctx, cfg)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		// 다음 윈도우까지 대기
		_, resetIn := r.windowKey(cfg)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(resetIn):
		}
	}
}

// MarketDataRateLimit bounds index-series fetches: 분당 30회
var MarketDataRateLimit = RateLimitConfig{
	Key:    "market_data",
	Limit:  30,
	Window: time.Minute,
}
