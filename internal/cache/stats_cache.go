package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estoqueops/estqop/internal/config"
	"github.com/estoqueops/estqop/internal/domain"
)

const statsKey = "runs:stats:default"

// RunStatsCache caches the aggregated run-history dashboard payload.
type RunStatsCache interface {
	GetStats(ctx context.Context) (*domain.RunStats, bool, error)
	SetStats(ctx context.Context, stats *domain.RunStats) error
	Invalidate(ctx context.Context) error
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopStatsCache struct{}

func NewRunStatsCache(cfg config.CacheConfig) (RunStatsCache, error) {
	if !cfg.Enabled {
		return &noopStatsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg, cfg.StatsTTLSeconds)
	if err != nil {
		return nil, err
	}

	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopRunStatsCache() RunStatsCache {
	return &noopStatsCache{}
}

func (c *redisStatsCache) GetStats(ctx context.Context) (*domain.RunStats, bool, error) {
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var stats domain.RunStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false, fmt.Errorf("decode run stats cache: %w", err)
	}

	return &stats, true, nil
}

func (c *redisStatsCache) SetStats(ctx context.Context, stats *domain.RunStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode run stats cache: %w", err)
	}

	if err := c.client.Set(ctx, statsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *noopStatsCache) GetStats(ctx context.Context) (*domain.RunStats, bool, error) {
	return nil, false, nil
}

func (n *noopStatsCache) SetStats(ctx context.Context, stats *domain.RunStats) error {
	return nil
}

func (n *noopStatsCache) Invalidate(ctx context.Context) error {
	return nil
}
