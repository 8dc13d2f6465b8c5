// Package cache memoizes pipeline results keyed by their declared inputs.
// Every load-and-join pipeline registers its result under a key derived
// from its inputs (workbook path, fetch window); mutations must call
// Invalidate before the next read so callers observe their own writes.
// Invalidation is explicit and first-class rather than an implicit
// side effect of the caching layer.
package cache

import (
	"strings"
	"sync"
)

// Cache is a keyed memoization table. The zero value is not usable;
// create one with New.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]interface{}
	inflight map[string]chan struct{}
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries:  make(map[string]interface{}),
		inflight: make(map[string]chan struct{}),
	}
}

// Key joins the declared inputs of a pipeline into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// GetOrLoad returns the cached value for key, invoking loader and caching
// its result on a miss. Load errors are returned without caching, so a
// failed load is retried on the next call.
//
// The loader runs outside the cache lock: a slow workbook parse or Up API
// fetch for one key never blocks reads of other keys. Concurrent callers
// of the same key share a single load. An Invalidate issued while a load
// is in flight does not cancel it; mutations invalidate after their
// rewrite completes, so the next read reloads from the rewritten sheet.
func (c *Cache) GetOrLoad(key string, loader func() (interface{}, error)) (interface{}, error) {
	for {
		c.mu.Lock()
		if value, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return value, nil
		}
		if wait, ok := c.inflight[key]; ok {
			c.mu.Unlock()
			<-wait
			continue
		}
		done := make(chan struct{})
		c.inflight[key] = done
		c.mu.Unlock()

		value, err := loader()

		c.mu.Lock()
		delete(c.inflight, key)
		if err == nil {
			c.entries[key] = value
		}
		c.mu.Unlock()
		close(done)

		return value, err
	}
}

// Invalidate removes every entry whose key starts with prefix. Pipelines
// key their entries by pipeline name first, so invalidating a pipeline
// drops all of its parameterised variants (e.g. every cached fetch window).
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]interface{})
}

// Len reports the number of cached entries. Used by tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
