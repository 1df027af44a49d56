// Package cache keeps the full entry snapshot in Redis so report requests
// do not hit PostgreSQL every time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sammyhga/SoulsData/internal/domain"
)

const (
	// SnapshotKey is where the encoded snapshot lives. Bump the suffix when
	// the Entry encoding changes.
	SnapshotKey = "soulsdata:entries:snapshot:v1"
	// GenerationKey counts invalidations. A snapshot loaded before the
	// latest invalidation must not be written back.
	GenerationKey = "soulsdata:entries:generation"
)

// ErrStale is returned by Set when the snapshot was invalidated after the
// caller read the generation.
var ErrStale = errors.New("snapshot invalidated while loading")

// SnapshotCache stores the entry list used for reporting.
//
// Writers read Generation before loading from the store and pass it to Set,
// so a load that races a create or delete is dropped instead of cached.
type SnapshotCache interface {
	// Get returns the cached snapshot; ok is false on a miss.
	Get(ctx context.Context) (entries []domain.Entry, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, entries []domain.Entry) error
	Invalidate(ctx context.Context) error
}

// RedisSnapshotCache is a SnapshotCache backed by go-redis.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache returns a cache that expires snapshots after ttl.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func (c *RedisSnapshotCache) Get(ctx context.Context) ([]domain.Entry, bool, error) {
	data, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	var entries []domain.Entry
	if err = json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return entries, true, nil
}

func (c *RedisSnapshotCache) Generation(ctx context.Context) (int64, error) {
	gen, err := generation(ctx, c.client)
	if err != nil {
		return 0, fmt.Errorf("get snapshot generation: %w", err)
	}
	return gen, nil
}

// Set writes the snapshot only if the generation still matches. The check
// and the write run under WATCH so an Invalidate in between aborts it.
func (c *RedisSnapshotCache) Set(ctx context.Context, gen int64, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, genErr := generation(ctx, tx)
		if genErr != nil {
			return genErr
		}
		if current != gen {
			return ErrStale
		}
		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SnapshotKey, data, c.ttl)
			return nil
		})
		return pipeErr
	}, GenerationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("set snapshot: %w", err)
	}
}

// Invalidate bumps the generation and drops the snapshot in one transaction.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, SnapshotKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

func generation(ctx context.Context, c redis.Cmdable) (int64, error) {
	gen, err := c.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Ping checks the Redis connection.
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NopSnapshotCache always misses. It is used when Redis is disabled.
type NopSnapshotCache struct{}

func (NopSnapshotCache) Get(context.Context) ([]domain.Entry, bool, error) { return nil, false, nil }
func (NopSnapshotCache) Generation(context.Context) (int64, error)         { return 0, nil }
func (NopSnapshotCache) Set(context.Context, int64, []domain.Entry) error  { return nil }
func (NopSnapshotCache) Invalidate(context.Context) error                  { return nil }
