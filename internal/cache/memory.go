package cache

import (
	"sync"
	"time"
)

// Provider defines the interface for a TTL key-value cache
type Provider interface {
	Get(key string) (interface{}, bool)                   // Retrieve a value, false if missing or expired
	Set(key string, value interface{}, ttl time.Duration) // Store a value with a time-to-live
	Flush()                                               // Drop all entries
}

// InMemoryCache is the process-local Provider implementation. It backs the
// in-memory domain store used in CLI mode and in tests.
type InMemoryCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
}

type cacheItem struct {
	value    interface{}
	expireAt time.Time
}

// NewInMemoryCache creates an empty in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		items: make(map[string]cacheItem),
	}
}

// Get retrieves a cache item by key. Expired items read as missing.
func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok || time.Now().After(item.expireAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores a value under key for the given TTL
func (c *InMemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:    value,
		expireAt: time.Now().Add(ttl),
	}
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
}
