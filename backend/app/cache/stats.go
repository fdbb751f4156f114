package cache

import (
	"context"
	"culinary-calc/backend/app/dto"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "culinary:admin:stats"

// StatsCache keeps the admin dashboard counters in Redis for a short TTL.
// A nil *StatsCache is valid and caches nothing.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached counters; ok is false on a miss.
func (c *StatsCache) Get(ctx context.Context) (stats *dto.AdminStats, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var s dto.AdminStats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func (c *StatsCache) Set(ctx context.Context, stats *dto.AdminStats) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, raw, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, statsKey).Err()
}
