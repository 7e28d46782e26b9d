// Package cache provides a read-through cache for computed weekly
// summaries.  Summaries are cheap to recompute, so cache failures are
// always treated as misses and never surface to callers.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brightloop/pulseboard/internal/models"
)

// SummaryCache stores computed weekly summaries keyed by date range.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*models.WeeklySummary, bool)
	Set(ctx context.Context, key string, s models.WeeklySummary)
}

// RangeKey builds the cache key for an inclusive date range.
func RangeKey(from, to string) string {
	return "summary:" + from + ":" + to
}

// RedisSummaryCache caches summaries in Redis with a TTL.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSummaryCache creates a Redis-backed summary cache.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisSummaryCache) Get(ctx context.Context, key string) (*models.WeeklySummary, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var s models.WeeklySummary
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Debug("summary cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &s, true
}

func (c *RedisSummaryCache) Set(ctx context.Context, key string, s models.WeeklySummary) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// NoopSummaryCache is used when Redis is unavailable.
type NoopSummaryCache struct{}

func NewNoopSummaryCache() *NoopSummaryCache { return &NoopSummaryCache{} }

func (*NoopSummaryCache) Get(context.Context, string) (*models.WeeklySummary, bool) {
	return nil, false
}

func (*NoopSummaryCache) Set(context.Context, string, models.WeeklySummary) {}
