// Package cache provides the read-mostly caches shared by document workers:
// compiled rule sets keyed by schema identity and parsed paths keyed by
// path string.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is used when Options.Size is not positive.
const DefaultSize = 256

// Options configures a Cache.
type Options struct {
	// Size is the maximum number of entries.
	Size int
	// TTL expires entries after the given duration. Zero disables expiry.
	TTL time.Duration
}

// store is the subset shared by lru.Cache and expirable.LRU.
type store[V any] interface {
	Get(key string) (V, bool)
	Add(key string, value V) bool
	Len() int
	Purge()
}

// Cache is a bounded, concurrency-safe cache. Concurrent misses for the same
// key run the loader once. Eviction drops only the cache's reference, so
// callers keep whatever value they already received.
type Cache[V any] struct {
	entries store[V]
	group   singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// New creates a cache with the given options.
func New[V any](opts Options) (*Cache[V], error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}

	if opts.TTL > 0 {
		return &Cache[V]{entries: expirable.NewLRU[string, V](size, nil, opts.TTL)}, nil
	}

	c, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Cache[V]{entries: c}, nil
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	return v, ok
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Loader errors are returned and not cached.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}

		c.entries.Add(key, v)

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	v, _ := res.(V)

	return v, nil
}

// Add stores value under key.
func (c *Cache[V]) Add(key string, value V) {
	c.entries.Add(key, value)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.entries.Len(),
	}
}
