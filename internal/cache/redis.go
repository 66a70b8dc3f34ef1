// Package cache stores extraction results in Redis keyed by the extractor
// settings fingerprint and the content hash of the text they came from.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Surya0265/CareerNav/internal/extraction"
)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "careernav:extraction:"

// DefaultTTL applies when New is given a non-positive TTL.
const DefaultTTL = 24 * time.Hour

// Cache is a Redis-backed extraction result cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New parses a redis:// URL, connects and pings the server.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opt.DialTimeout == 0 {
		opt.DialTimeout = 5 * time.Second
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 3 * time.Second
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 3 * time.Second
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Key returns the Redis key for text with contentHash extracted under the
// given settings fingerprint.
func Key(settings, contentHash string) string {
	return KeyPrefix + settings + ":" + contentHash
}

// Get returns the cached result. found is false on a miss. An entry that no
// longer decodes is evicted and reported as an error.
func (c *Cache) Get(ctx context.Context, settings, contentHash string) (res extraction.Result, found bool, err error) {
	key := Key(settings, contentHash)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return extraction.Result{}, false, nil
		}
		return extraction.Result{}, false, fmt.Errorf("failed to read cached result: %w", err)
	}

	if err := json.Unmarshal(data, &res); err != nil {
		_ = c.client.Del(ctx, key).Err()
		return extraction.Result{}, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return res, true, nil
}

// Set stores res for the configured TTL.
func (c *Cache) Set(ctx context.Context, settings, contentHash string, res extraction.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, Key(settings, contentHash), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

// TTL returns the expiry applied to new entries.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
