// Package querycache memoizes RPC query results on the client.
//
// Entries are keyed by procedure path and encoded input (see [Key]).
// Concurrent fetches of the same key are coalesced into one call and
// successful results are kept for the configured TTL. Mutations invalidate
// by path.
package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

// Defaults applied to zero config values.
const (
	DefaultCapacity           = 10000
	DefaultShards             = 10
	DefaultTTL                = 30 * time.Second
	DefaultEvictionPercentage = 10
)

// Config sizes the cache.
type Config struct {
	Capacity           int
	Shards             int
	TTL                time.Duration
	EvictionPercentage int
}

// Cache is safe for concurrent use.
type Cache struct {
	store *sturdyc.Client[any]

	mu     sync.Mutex
	byPath map[string]map[string]struct{}
	gens   map[string]uint64
}

// New builds a cache from cfg.
func New(cfg Config) *Cache {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultShards
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.EvictionPercentage <= 0 {
		cfg.EvictionPercentage = DefaultEvictionPercentage
	}

	return &Cache{
		store:  sturdyc.New[any](cfg.Capacity, cfg.Shards, cfg.TTL, cfg.EvictionPercentage),
		byPath: make(map[string]map[string]struct{}),
		gens:   make(map[string]uint64),
	}
}

// Key derives the cache key of a call to path with input. Inputs that
// encode to the same JSON share a key.
func Key(path string, input any) (string, error) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("error encoding cache key for %s: %w", path, err)
	}
	return path + "|" + string(encoded), nil
}

// Fetch returns the cached value under key or calls fetch to produce it.
// Errors are not cached. A result whose path was invalidated while it was
// being fetched is returned to the caller but not kept.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	path, gen := c.track(key)

	v, err := c.store.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if c.stale(path, gen) {
		c.store.Delete(key)
	}
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cached value under %q is %T", key, v)
	}
	return typed, nil
}

// Invalidate drops every entry cached for the given procedure paths.
// Fetches of those paths still in flight are not stored when they finish.
func (c *Cache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, path := range paths {
		for key := range c.byPath[path] {
			c.store.Delete(key)
		}
		delete(c.byPath, path)
		c.gens[path]++
	}
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	return c.store.Size()
}

// track registers key under its path and returns the path's current
// invalidation generation.
func (c *Cache) track(key string) (string, uint64) {
	path, _, _ := strings.Cut(key, "|")

	c.mu.Lock()
	defer c.mu.Unlock()

	keys, ok := c.byPath[path]
	if !ok {
		keys = make(map[string]struct{})
		c.byPath[path] = keys
	}
	keys[key] = struct{}{}
	return path, c.gens[path]
}

func (c *Cache) stale(path string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gens[path] != gen
}
