package vessel

import (
	"sync"
	"time"
)

type cacheEntry struct {
	profile   Profile
	expiresAt time.Time
}

// cache is a small TTL cache over lookup results so repeated dashboard
// searches do not re-hit the upstream. Expired entries are evicted lazily on
// read.
type cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

func (c *cache) get(key string) (Profile, bool) {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return Profile{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return Profile{}, false
	}
	return entry.profile, true
}

func (c *cache) set(key string, profile Profile) {
	c.mu.Lock()
	c.store[key] = cacheEntry{profile: profile, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
