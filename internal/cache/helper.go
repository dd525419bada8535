package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key builders. Keep these in one place so invalidation stays in
// sync with the readers.
func PostKey(id string) string           { return "post:" + id }
func PostListKey(page, limit int) string { return fmt.Sprintf("posts:page:%d:limit:%d", page, limit) }
func UserKey(uid string) string          { return "user:" + uid }

// TTLs per key family. Comment threads and interaction sets are served
// straight from the database; their read-after-write behavior is part of
// the API contract.
const (
	PostTTL     = 5 * time.Minute
	PostListTTL = 1 * time.Minute
	UserTTL     = 10 * time.Minute
)

// ErrCacheMiss is returned by GetJSON when the key is absent or the
// cache is unavailable.
var ErrCacheMiss = errors.New("cache miss")

// GetJSON fetches key and unmarshals it into dest. Returns ErrCacheMiss
// when the key does not exist or Redis is not configured.
func GetJSON(ctx context.Context, key string, dest any) error {
	c := GetClient()
	if c == nil {
		return ErrCacheMiss
	}
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON marshals value and stores it under key with the given TTL.
// A nil client is a no-op.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c := GetClient()
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl).Err()
}

// Invalidate deletes the given keys. Best effort; errors are returned
// but callers typically only log them.
func Invalidate(ctx context.Context, keys ...string) error {
	c := GetClient()
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.Del(ctx, keys...).Err()
}

// InvalidatePattern removes all keys matching pattern using SCAN to
// avoid blocking Redis on large keyspaces.
func InvalidatePattern(ctx context.Context, pattern string) error {
	c := GetClient()
	if c == nil {
		return nil
	}
	iter := c.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Del(ctx, keys...).Err()
}

// CacheAside returns the cached value under key, or loads it with load,
// stores it, and returns it. Load errors pass through untouched.
func CacheAside[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if err := GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	_ = SetJSON(ctx, key, value, ttl)
	return value, nil
}
