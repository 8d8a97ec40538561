package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a redis-backed read-through cache. A nil *Cache is valid and
// disables caching, so callers never branch on configuration.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

// New connects a cache to the redis instance at addr.
func New(addr, password string, db int) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

// GetOrLoad returns the cached bytes for key, loading and storing them
// on a miss. Concurrent misses for the same key are collapsed into a
// single load. Redis errors fall through to the loader so a cache
// outage never fails a read.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate drops the given keys. Best effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
