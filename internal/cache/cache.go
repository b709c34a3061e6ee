package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "likes:cache:" // Namespace for all memoized aggregates

// ErrCorrupted is returned when a stored cache value cannot be decoded
// into the expected shape. This indicates a programming bug, not a
// runtime condition to recover from, so it is never resolved by a
// silent recompute.
var ErrCorrupted = errors.New("cache: corrupted entry")

// Cache memoizes expensive aggregate computations in Redis with no
// expiry. A populated key is returned as-is on every read, even if the
// underlying data has since changed; a caller that needs fresh state
// must use Refresh or invalidate explicitly.
//
// Concurrent misses on the same key may both run the computation. That
// race is accepted: computations are pure functions of the current
// store snapshot, so the last write wins and only costs redundant work.
type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetOrCompute looks key up and decodes the stored value into dest. On
// a miss it runs compute, stores the JSON-encoded result without
// expiry, and decodes it into dest.
func (c *Cache) GetOrCompute(ctx context.Context, key string, dest any, compute func(ctx context.Context) (any, error)) error {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == nil {
		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrCorrupted, key, err)
		}
		return nil
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache get %q: %w", key, err)
	}

	return c.Refresh(ctx, key, dest, compute)
}

// Refresh always runs compute and overwrites key with the result,
// bypassing whatever is currently stored.
func (c *Cache) Refresh(ctx context.Context, key string, dest any, compute func(ctx context.Context) (any, error)) error {
	value, err := compute(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %q: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	// Round-trip through JSON so hits and misses hand the caller an
	// identically-shaped value.
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrCorrupted, key, err)
	}
	return nil
}

// Invalidate drops a single key. Missing keys are not an error.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache invalidate %q: %w", key, err)
	}
	return nil
}

// InvalidateAll drops every key in the cache namespace. Other keys in
// the same Redis database are left alone.
func (c *Cache) InvalidateAll(ctx context.Context) (int, error) {
	var dropped int
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return dropped, fmt.Errorf("cache flush: %w", err)
		}
		dropped++
	}
	if err := iter.Err(); err != nil {
		return dropped, fmt.Errorf("cache flush scan: %w", err)
	}
	return dropped, nil
}
