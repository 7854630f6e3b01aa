package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/promptveil/promptveil/internal/config"
	"github.com/promptveil/promptveil/internal/privacy"
	"go.uber.org/zap"
)

// ScanCache is a Redis-backed cache of scan results keyed by a hash of
// the input text. The engine itself stays pure; caching is purely a
// hosting-layer optimization. Cached entries hold only the serialized
// result, which excludes raw finding values.
type ScanCache struct {
	client *redis.Client
	config *config.CacheConfig
	logger *zap.Logger
	hits   int64
	misses int64
}

// Stats reports cache performance counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a Redis-backed scan cache and verifies connectivity.
func New(cfg *config.CacheConfig, logger *zap.Logger) (*ScanCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = cfg.MaxConnections
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	c := &ScanCache{
		client: client,
		config: cfg,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Scan cache initialized",
		zap.String("redis_url", maskRedisURL(cfg.RedisURL)),
		zap.Int("max_connections", cfg.MaxConnections),
		zap.Duration("default_ttl", cfg.DefaultTTL))

	return c, nil
}

// Get returns the cached result for text, or (nil, false) on a miss.
// Redis errors degrade to a miss rather than failing the scan path.
func (c *ScanCache) Get(ctx context.Context, text string) (*privacy.ScanResult, bool) {
	key := c.key(text)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	} else if err != nil {
		c.logger.Error("Cache lookup failed", zap.Error(err))
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	var result privacy.ScanResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("Failed to unmarshal cached result", zap.Error(err))
		c.client.Del(ctx, key)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return &result, true
}

// Set stores a scan result under the text's hash with the configured TTL.
func (c *ScanCache) Set(ctx context.Context, text string, result *privacy.ScanResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal scan result: %w", err)
	}
	return c.client.Set(ctx, c.key(text), data, c.config.DefaultTTL).Err()
}

// Stats returns current hit/miss counters.
func (c *ScanCache) Stats() Stats {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{Hits: hits, Misses: misses, HitRate: rate}
}

// Close releases the Redis client.
func (c *ScanCache) Close() error {
	return c.client.Close()
}

// key derives the cache key from the SHA-256 of the input text.
func (c *ScanCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.config.KeyPrefix + hex.EncodeToString(sum[:])
}

// maskRedisURL hides credentials when logging the connection target.
func maskRedisURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "redis://***"
	}
	if u.User != nil {
		u.User = url.UserPassword("***", "***")
	}
	return strings.TrimSuffix(u.String(), "/")
}
