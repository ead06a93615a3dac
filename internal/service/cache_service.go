package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/pkg/cache"
	"github.com/greenhouse-labs/catalog/pkg/circuit"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"github.com/greenhouse-labs/catalog/pkg/redis"
)

// CacheService caches single-entity reads. It uses Redis when a client is
// configured and falls back to the in-process cache otherwise, or while the
// Redis breaker is open. Cache errors are logged and never fail the caller.
type CacheService struct {
	redisClient redis.Client
	breaker     *circuit.Breaker
	local       *cache.Cache
	ttl         time.Duration
}

func NewCacheService(redisClient redis.Client, local *cache.Cache, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &CacheService{
		redisClient: redisClient,
		breaker:     circuit.NewBreaker("redis-cache", circuit.DefaultConfig()),
		local:       local,
		ttl:         ttl,
	}
}

func EntityKey(kind string, id uint) string {
	return fmt.Sprintf("%s%d", kind, id)
}

// useRedis admits a Redis call through the breaker. A true result must be
// paired with s.breaker.Record.
func (s *CacheService) useRedis() bool {
	if s.redisClient == nil || !s.redisClient.IsEnabled() {
		return false
	}
	return s.breaker.Allow() == nil
}

// Get decodes the cached value for key into dst and reports a hit.
func (s *CacheService) Get(ctx context.Context, key string, dst any) bool {
	if s == nil {
		return false
	}
	ctx = ctxutil.WithOperation(ctx, "cache_service", "Get")

	if s.useRedis() {
		found, err := s.redisClient.GetJSON(ctx, key, dst)
		s.breaker.Record(err)
		if err != nil {
			logger.WarnWithContext(ctx, "Redis cache read failed").String("key", key).Err(err).Log()
			return false
		}
		return found
	}

	if s.local == nil {
		return false
	}
	data, ok := s.local.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.WarnWithContext(ctx, "Cached item could not be decoded").String("key", key).Err(err).Log()
		s.local.Delete(key)
		return false
	}
	return true
}

func (s *CacheService) Set(ctx context.Context, key string, value any) {
	if s == nil {
		return
	}
	ctx = ctxutil.WithOperation(ctx, "cache_service", "Set")

	if s.useRedis() {
		err := s.redisClient.SetJSON(ctx, key, value, s.ttl)
		s.breaker.Record(err)
		if err != nil {
			logger.WarnWithContext(ctx, "Redis cache write failed").String("key", key).Err(err).Log()
		}
		return
	}

	if s.local == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache item could not be encoded").String("key", key).Err(err).Log()
		return
	}
	s.local.Set(key, data, s.ttl)
}

func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	ctx = ctxutil.WithOperation(ctx, "cache_service", "Invalidate")

	if s.useRedis() {
		err := s.redisClient.Delete(ctx, keys...)
		s.breaker.Record(err)
		if err != nil {
			logger.WarnWithContext(ctx, "Redis cache invalidation failed").Int("keys", len(keys)).Err(err).Log()
		}
	}
	if s.local != nil {
		s.local.Delete(keys...)
	}
}

// InvalidatePrefix drops every entry under prefix, e.g. all plants after a
// category is renamed.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	if s == nil {
		return
	}
	ctx = ctxutil.WithOperation(ctx, "cache_service", "InvalidatePrefix")

	if s.useRedis() {
		n, err := s.redisClient.DeleteByPattern(ctx, prefix+"*")
		s.breaker.Record(err)
		if err != nil {
			logger.WarnWithContext(ctx, "Redis prefix invalidation failed").String("prefix", prefix).Err(err).Log()
		} else {
			logger.DebugWithContext(ctx, "Cache prefix invalidated").String("prefix", prefix).Int("deleted", n).Log()
		}
	}
	if s.local != nil {
		s.local.DeletePrefix(prefix)
	}
}
