// Package query provides a single-key result cache for remote reads: fetch
// on demand, serve cached values until they go stale or are invalidated,
// and never retry a failed fetch on its own.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotLoaded is returned by Get while the cache's enabled gate reports
// false. It is a well-defined "not loaded" state, not a failure: no fetch
// was attempted.
var ErrNotLoaded = errors.New("query: disabled, result not loaded")

// FetchFunc retrieves a fresh value from the remote source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cache caches the result of a single logical query. A failed fetch is not
// cached and not retried; the next Get simply tries again.
type Cache[T any] struct {
	fetch     FetchFunc[T]
	enabled   func() bool
	staleTime time.Duration
	now       func() time.Time

	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	loaded    bool
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithEnabled gates the cache on a predicate. While the predicate reports
// false, Get returns ErrNotLoaded without touching the remote source.
func WithEnabled[T any](enabled func() bool) Option[T] {
	return func(c *Cache[T]) { c.enabled = enabled }
}

// WithStaleTime sets how long a fetched value is served before the next Get
// re-fetches. Zero means values never go stale on their own and are only
// refreshed by Invalidate.
func WithStaleTime[T any](d time.Duration) Option[T] {
	return func(c *Cache[T]) { c.staleTime = d }
}

// NewCache creates a cache around the given fetch function.
func NewCache[T any](fetch FetchFunc[T], opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		fetch: fetch,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value, fetching a fresh one when the cache is
// empty, invalidated, or stale. Fetch errors propagate to the caller
// unchanged and leave the cache empty.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if c.enabled != nil && !c.enabled() {
		return zero, ErrNotLoaded
	}

	c.mu.Lock()
	if c.loaded && (c.staleTime == 0 || c.now().Sub(c.fetchedAt) < c.staleTime) {
		v := c.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.fetch(ctx)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	c.value = v
	c.fetchedAt = c.now()
	c.loaded = true
	c.mu.Unlock()

	return v, nil
}

// Invalidate drops the cached value so the next Get fetches from the remote
// source again.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.loaded = false
	c.mu.Unlock()
}

// Loaded reports whether a value is currently cached.
func (c *Cache[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
