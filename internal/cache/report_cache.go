package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/estoqueops/estqop/internal/config"
)

const reportKeyPrefix = "report:file"

// ReportCache caches report file contents keyed by path and modification
// time. A batch that rewrites a report bumps its mtime, so fresh reads miss
// the old entry and the TTL only bounds how long orphaned entries linger.
type ReportCache interface {
	Get(ctx context.Context, path string, mtime time.Time) ([]byte, bool, error)
	Set(ctx context.Context, path string, mtime time.Time, payload []byte) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg, cfg.ReportTTLSeconds)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Get(ctx context.Context, path string, mtime time.Time) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(path, mtime)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, path string, mtime time.Time, payload []byte) error {
	if err := c.client.Set(ctx, buildReportKey(path, mtime), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix)
}

func (n *noopReportCache) Get(ctx context.Context, path string, mtime time.Time) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, path string, mtime time.Time, payload []byte) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(path string, mtime time.Time) string {
	hash := sha1.Sum([]byte(fmt.Sprintf("%s|%d", filepath.Clean(path), mtime.UnixNano())))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}
