package market

import (
	"context"

	"github.com/wonny/fundwise/internal/contracts"
	"github.com/wonny/fundwise/pkg/logger"
	"github.com/wonny/fundwise/pkg/redis"
)

// CachedProvider caches another provider's status in Redis
type CachedProvider struct {
	inner  contracts.MarketPhaseProvider
	cache  *redis.Cache
	key    string
	logger *logger.Logger
}

// NewCachedProvider wraps inner with a Redis cache keyed by symbol
func NewCachedProvider(inner contracts.MarketPhaseProvider, cache *redis.Cache, symbol string, log *logger.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		key:    redis.MarketStatusKey(symbol),
		logger: log,
	}
}

// Status returns the cached status or computes and stores a fresh one
func (p *CachedProvider) Status(ctx context.Context) (*contracts.MarketStatus, error) {
	var status contracts.MarketStatus
	err := p.cache.GetOrSet(ctx, p.key, &status, redis.TTLLong, func() (interface{}, error) {
		return p.inner.Status(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Refresh recomputes the status and overwrites the cache entry
func (p *CachedProvider) Refresh(ctx context.Context) (*contracts.MarketStatus, error) {
	status, err := p.inner.Status(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Set(ctx, p.key, status, redis.TTLLong); err != nil {
		p.logger.WithError(err).Warn("market status cache write failed")
	}
	return status, nil
}
