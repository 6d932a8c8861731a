package cache

import (
	"sync"
	"time"
)

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a tiny TTL map keeping aggregate endpoints from rescanning the
// whole collection on every request. Expired entries are dropped lazily on
// the next read; the handful of keys here never warrants a sweeper.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]item
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Cache{
		ttl:   ttl,
		items: make(map[string]item),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(it.expiresAt) {
		c.Delete(key)
		return nil, false
	}

	return it.value, true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.items[key] = item{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
