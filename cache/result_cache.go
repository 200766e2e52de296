package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"inad-watch/analysis"
)

// ResultCache caches one period's full pipeline result, keyed by period label
// plus an input hash, so re-running an unchanged period skips the compute.
type ResultCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewResultCache creates a result cache. A nil Redis client yields a cache
// that always misses.
func NewResultCache(redis *RedisClient, ttl time.Duration) *ResultCache {
	return &ResultCache{
		redis: redis,
		ttl:   ttl,
	}
}

// Get retrieves a cached period result. Returns the result and true on a hit.
func (c *ResultCache) Get(ctx context.Context, periodLabel, inputHash string) (*analysis.Result, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	var res analysis.Result
	if err := c.redis.Get(ctx, resultKey(periodLabel, inputHash), &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set caches a period result.
func (c *ResultCache) Set(ctx context.Context, periodLabel, inputHash string, res *analysis.Result) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, resultKey(periodLabel, inputHash), res, c.ttl)
}

func resultKey(periodLabel, inputHash string) string {
	return fmt.Sprintf("inad:analysis:%s:%s", periodLabel, inputHash)
}

// InputHash creates a hash over the period's inputs and settings so stale
// cache entries can never shadow changed data. Inputs that cannot be
// serialized return an error; callers must skip the cache in that case
// rather than share one hash across different inputs.
func InputHash(data interface{}) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("hash inputs: %w", err)
	}
	hash := md5.Sum(jsonData)
	return fmt.Sprintf("%x", hash[:8]), nil
}
