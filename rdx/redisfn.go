package rdx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON cache-aside helper over Redis. A nil *Cache is
// valid and disables caching, so callers never need to branch on whether
// Redis was configured.
type Cache struct {
	conn *redis.Client
}

// New connects and pings; a failed ping returns the error so the caller
// can decide to run without a cache.
func New(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{conn: client}, nil
}

// GetJSON unmarshals the cached value into dest. Returns false on miss,
// decode failure, or when caching is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// SetJSON stores value under key with a TTL. Failures are ignored; the
// cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.conn.Set(ctx, key, data, ttl)
}

// Del invalidates keys after a write.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	c.conn.Del(ctx, keys...)
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.conn.Close()
}
