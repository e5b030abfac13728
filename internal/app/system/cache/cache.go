// Package cache is a process-local key/value cache with per-entry TTLs.
//
// Expiry is checked lazily: an entry older than its TTL is evicted by the
// Get that finds it. Nothing sweeps in the background, and nothing is shared
// across processes, so a cached list may lag a write made elsewhere by up to
// its TTL.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value any
	setAt time.Time
	ttl   time.Duration
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New returns an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty cache that reads time from now.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{entries: make(map[string]entry), now: now}
}

// Set stores value under key for ttl. A non-positive ttl stores nothing.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, setAt: c.now(), ttl: ttl}
}

// Get returns the value for key. It misses when the key was never set or
// when more than the TTL has passed since Set; the stale entry is removed.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.setAt) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeletePrefix removes every key starting with prefix. Stores call this
// after a write so this process stops serving the old list.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of entries held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetAs is Get with a type assertion. A value of another type is a miss.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Remember returns the cached value for key, or calls load and caches its
// result for ttl. Errors are not cached. A nil cache always calls load.
func Remember[T any](c *Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if v, ok := GetAs[T](c, key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if c != nil {
		c.Set(key, v, ttl)
	}
	return v, nil
}
