package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundwise/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "test")

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(context.Background(), MarketDataRateLimit)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, MarketDataRateLimit.Limit, remaining)

	assert.NoError(t, limiter.Wait(context.Background(), MarketDataRateLimit))
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Set(ctx, "key", "value", TTLShort))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestCache_GetOrSetFallsThroughWhenDisabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")

	calls := 0
	var got []string
	err := cache.GetOrSet(context.Background(), "funds", &got, TTLMedium, func() (interface{}, error) {
		calls++
		return []string{"F1", "F2"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"F1", "F2"}, got)
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "ranked:2025-06-30:abcdef012345", RankedKey("2025-06-30", "abcdef0123456789"))
	assert.Equal(t, "ranked:2025-06-30:abc", RankedKey("2025-06-30", "abc"))
	assert.Equal(t, "market:status:NIFTY50", MarketStatusKey("NIFTY50"))
	assert.Equal(t, "funds:list:100", FundListKey(100))
}

func TestClient_PingDisabled(t *testing.T) {
	err := disabledClient(t).Ping(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestRateLimiter_WindowKey(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "fundwise")
	limiter.now = func() time.Time { return time.UnixMilli(125_000) }

	key, resetIn := limiter.windowKey(RateLimitConfig{Key: "market_data", Limit: 30, Window: time.Minute})
	assert.Equal(t, "fundwise:ratelimit:market_data:2", key)
	assert.Equal(t, 55*time.Second, resetIn)
}
