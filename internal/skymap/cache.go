package skymap

import (
	"sync"
)

// Cache is a concurrency-safe map cache keyed by file path, so workers
// rendering several views of one file decode it once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	load  func(path string) (*Map, error)
}

type cacheEntry struct {
	m   *Map
	err error
}

// NewCache creates a cache backed by Load.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		load:  Load,
	}
}

// Get loads and caches a map by path. Load errors are cached too.
func (c *Cache) Get(path string) (*Map, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.m, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	m, err := c.load(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.m, entry.err
	}
	c.items[path] = &cacheEntry{m: m, err: err}
	c.mu.Unlock()

	return m, err
}

// Put stores an in-memory map under a key.
func (c *Cache) Put(key string, m *Map) {
	c.mu.Lock()
	c.items[key] = &cacheEntry{m: m}
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
