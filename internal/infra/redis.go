package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// ErrCacheMiss is returned by JSONCache.Get when the key is absent or the
// cache is disabled.
var ErrCacheMiss = errors.New("cache miss")

// JSONCache stores JSON-encoded snapshots in Redis. A nil client disables
// it: Get always misses and writes are no-ops.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) key(k string) string { return c.prefix + ":" + k }

// Get decodes the cached value for k into dest.
func (c *JSONCache) Get(ctx context.Context, k string, dest interface{}) error {
	if c == nil || c.rdb == nil {
		return ErrCacheMiss
	}
	b, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

// Set stores v under k for the cache TTL.
func (c *JSONCache) Set(ctx context.Context, k string, v interface{}) error {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(k), b, c.ttl).Err()
}

// Delete drops k.
func (c *JSONCache) Delete(ctx context.Context, k string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key(k)).Err()
}
