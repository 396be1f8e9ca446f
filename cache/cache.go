// Package cache provides a generic, thread-safe LRU cache.
//
// The planning pipeline injects a Cache into its metadata resolver so that
// dominant-color statistics are computed once per content digest. The cache
// is caller-owned: its lifetime is the planning session's, not the process's.
//
//	c := cache.New[string, *gatsby.Metadata](256)
//	meta := c.GetOrCreate(digest, func() *gatsby.Metadata { ... })
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache

import "sync"

// Cache is a generic thread-safe LRU cache with a soft limit.
// When the cache exceeds softLimit, the oldest quarter of entries is
// evicted.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // Monotonic access counter
}

// cacheEntry holds a cached value with its access time.
type cacheEntry[V any] struct {
	value V
	atime int64 // Access time (tick value)
}

// New creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.tick++
	entry.atime = c.tick

	return entry.value, true
}

// Set stores a value in the cache.
// If the cache exceeds softLimit after insertion, oldest entries are
// evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &cacheEntry[V]{
		value: value,
		atime: c.tick,
	}

	c.evictIfNeeded()
}

// GetOrCreate returns the cached value for key, or stores and returns the
// result of create. Insert-if-absent: create runs under the lock, so a key
// is computed at most once per cache even under concurrent access.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.tick++
		entry.atime = c.tick
		return entry.value
	}

	value := create()

	c.tick++
	c.entries[key] = &cacheEntry[V]{
		value: value,
		atime: c.tick,
	}

	c.evictIfNeeded()

	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the soft limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.softLimit
}

// evictIfNeeded drops the oldest quarter of entries when the soft limit is
// exceeded. Must be called with c.mu held.
func (c *Cache[K, V]) evictIfNeeded() {
	if c.softLimit <= 0 || len(c.entries) <= c.softLimit {
		return
	}

	target := len(c.entries) - c.softLimit + c.softLimit/4
	for ; target > 0; target-- {
		var (
			oldestKey   K
			oldestTick  int64
			foundOldest bool
		)
		for k, e := range c.entries {
			if !foundOldest || e.atime < oldestTick {
				oldestKey = k
				oldestTick = e.atime
				foundOldest = true
			}
		}
		if !foundOldest {
			return
		}
		delete(c.entries, oldestKey)
	}
}
