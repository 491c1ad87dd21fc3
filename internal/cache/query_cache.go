// internal/cache/query_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seoulbrew/sitescope/internal/config"
	"github.com/seoulbrew/sitescope/internal/domain"
)

const (
	queryKeyPrefix = "sitescope:query"
	scanBatchSize  = 100
)

// QueryCache memoizes per-view query results. Scores themselves are
// computed once at snapshot build; this cache only covers the
// filter/sort/top-N work re-run on every interaction. Keys embed the
// snapshot fingerprint, so a reload invalidates implicitly.
type QueryCache interface {
	GetDongList(ctx context.Context, key string) ([]*domain.DongStats, bool, error)
	SetDongList(ctx context.Context, key string, dongs []*domain.DongStats) error
	GetRecommendations(ctx context.Context, key string) ([]domain.Recommendation, bool, error)
	SetRecommendations(ctx context.Context, key string, recs []domain.Recommendation) error
	InvalidateAll(ctx context.Context) error
}

type redisQueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopQueryCache struct{}

func NewQueryCache(cfg config.CacheConfig) (QueryCache, error) {
	if !cfg.Enabled {
		return &noopQueryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisQueryCache{client: client, ttl: ttl}, nil
}

func NewNoopQueryCache() QueryCache {
	return &noopQueryCache{}
}

// Key hashes the snapshot fingerprint plus the query descriptor parts into
// a cache key.
func Key(snapshotID string, parts ...string) string {
	raw := snapshotID + "|" + strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", queryKeyPrefix, hex.EncodeToString(hash[:]))
}

func (c *redisQueryCache) GetDongList(ctx context.Context, key string) ([]*domain.DongStats, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dongs []*domain.DongStats
	if err := json.Unmarshal(payload, &dongs); err != nil {
		return nil, false, fmt.Errorf("decode dong list cache: %w", err)
	}

	return dongs, true, nil
}

func (c *redisQueryCache) SetDongList(ctx context.Context, key string, dongs []*domain.DongStats) error {
	return c.set(ctx, key, dongs)
}

func (c *redisQueryCache) GetRecommendations(ctx context.Context, key string) ([]domain.Recommendation, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(payload, &recs); err != nil {
		return nil, false, fmt.Errorf("decode recommendations cache: %w", err)
	}

	return recs, true, nil
}

func (c *redisQueryCache) SetRecommendations(ctx context.Context, key string, recs []domain.Recommendation) error {
	return c.set(ctx, key, recs)
}

func (c *redisQueryCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode query cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisQueryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, queryKeyPrefix, scanBatchSize)
}

func (n *noopQueryCache) GetDongList(ctx context.Context, key string) ([]*domain.DongStats, bool, error) {
	return nil, false, nil
}

func (n *noopQueryCache) SetDongList(ctx context.Context, key string, dongs []*domain.DongStats) error {
	return nil
}

func (n *noopQueryCache) GetRecommendations(ctx context.Context, key string) ([]domain.Recommendation, bool, error) {
	return nil, false, nil
}

func (n *noopQueryCache) SetRecommendations(ctx context.Context, key string, recs []domain.Recommendation) error {
	return nil
}

func (n *noopQueryCache) InvalidateAll(ctx context.Context) error {
	return nil
}
