package services

import (
	"strings"
	"sync"
	"time"
)

type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache holds read results shared by the services. Every write through a service
// invalidates the keys it affects, so entries never outlive the data they summarize.
type Cache struct {
	entries map[string]*CacheEntry
	mutex   sync.RWMutex
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*CacheEntry)}
}

func (c *Cache) Set(key string, data interface{}, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for k, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = &CacheEntry{Data: data, ExpiresAt: now.Add(duration)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Data, true
}

// Invalidate drops every key starting with prefix.
func (c *Cache) Invalidate(prefix string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
