package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache key layout. Price lookups are keyed by product id so a stock or
// price change can invalidate without knowing the code.
const (
	keyDashboardSummary = "cache:dashboard:summary"
	keyProductPrefix    = "cache:product:"

	dashboardTTL = 60 * time.Second
	productTTL   = 5 * time.Minute
)

// CacheInvalidator is the write-side view of the cache: services that mutate
// products or sales drop the affected keys after commit.
type CacheInvalidator interface {
	InvalidateDashboard(ctx context.Context)
	InvalidateProduct(ctx context.Context, id uuid.UUID)
}

// RedisCache implements cache-aside over go-redis. A nil *RedisCache is safe
// to use and disables caching (unit test mode).
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache { return &RedisCache{rdb: rdb} }

func (c *RedisCache) GetJSON(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false // miss or redis error — either way, fall through to the DB
	}
	return data, true
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
	}
}

func (c *RedisCache) InvalidateDashboard(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyDashboardSummary).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: dashboard invalidation failed")
	}
}

func (c *RedisCache) InvalidateProduct(ctx context.Context, id uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyProductPrefix+id.String()).Err(); err != nil {
		log.Warn().Err(err).Str("product_id", id.String()).Msg("cache: product invalidation failed")
	}
}

var _ CacheInvalidator = (*RedisCache)(nil)
