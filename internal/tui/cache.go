package tui

import (
	"sync"
	"time"
)

// cache holds expensive query results so switching tabs does not re-scan
// the scoop root on every visit. Entries expire after ttl; mutating
// operations invalidate the affected keys explicitly.
type cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[T]
}

type cacheEntry[T any] struct {
	value T
	stamp time.Time
}

func newCache[T any](ttl time.Duration) *cache[T] {
	return &cache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
	}
}

// Get returns the cached value for key if it exists and has not expired.
func (c *cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Since(e.stamp) > c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores value under key with the current timestamp.
func (c *cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, stamp: time.Now()}
}

// Invalidate removes a single key.
func (c *cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry[T])
}
