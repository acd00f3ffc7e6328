package engine

import (
	"sync"
	"time"
)

// resultCache memoizes final result sets by normalized request key. Entries
// expire lazily on the read path; there is no background sweep. Concurrent
// reads are cheap, writes are last-writer-wins per key, which is acceptable
// because entries are idempotent recomputations of the same query.
type resultCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry[T]
	now     func() time.Time // injectable for testing
}

type cacheEntry[T any] struct {
	expiresAt time.Time
	items     []T
}

func newResultCache[T any](ttl time.Duration) *resultCache[T] {
	return &resultCache[T]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

func (c *resultCache[T]) get(key string) ([]T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent writer may have refreshed the entry.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.items, true
}

func (c *resultCache[T]) put(key string, items []T) {
	c.mu.Lock()
	c.entries[key] = cacheEntry[T]{
		expiresAt: c.now().Add(c.ttl),
		items:     items,
	}
	c.mu.Unlock()
}
