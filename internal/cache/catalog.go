package cache

import (
	"sync"
	"time"
)

// Catalog is a small read-through cache for storefront responses. Admin
// mutations and the settings clear-cache endpoint invalidate it wholesale;
// entries also expire on their own after the TTL.
type Catalog struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	value   interface{}
	expires time.Time
}

// New creates a catalog cache with the given entry TTL.
func New(ttl time.Duration) *Catalog {
	return &Catalog{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *Catalog) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key.
func (c *Catalog) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
