// Package cache provides the redis-backed slot store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mhimmo/internal/core/config"
	"mhimmo/internal/persistence"
)

// Cache stores each slot as a plain redis string without expiry.
type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(c config.Redis) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}),
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.RDB.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *Cache) Close() error { return c.RDB.Close() }

// Get coalesces concurrent reads of the same key into one round trip. The
// shared read does not inherit any caller's cancellation; a caller whose ctx
// ends stops waiting without failing the others.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (any, error) {
		b, err := c.RDB.Get(shared, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, persistence.ErrNotFound
		}
		return b, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return append([]byte(nil), r.Val.([]byte)...), nil
	}
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) error {
	return c.RDB.Set(ctx, key, val, 0).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.RDB.Del(ctx, key).Err()
}

// Keys lists the application slots in this redis database.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	var out []string
	it := c.RDB.Scan(ctx, 0, "*mhimmo-*", 100).Iterator()
	for it.Next(ctx) {
		out = append(out, it.Val())
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(out)
	return out, nil
}

var (
	_ persistence.KV     = (*Cache)(nil)
	_ persistence.Lister = (*Cache)(nil)
)
