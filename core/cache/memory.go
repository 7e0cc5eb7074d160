package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache keeps everything in process. Used by tests and by local runs without redis.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	indexes map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		indexes: make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Update(_ context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var current []byte
	entry, ok := c.entries[key]
	if ok && !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	if ok {
		current = append([]byte(nil), entry.value...)
	}
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	entry = memoryEntry{value: append([]byte(nil), next...)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		delete(c.indexes, key)
	}
	return nil
}

func (c *MemoryCache) AddToIndex(_ context.Context, index string, key string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	members, ok := c.indexes[index]
	if !ok {
		members = make(map[string]struct{})
		c.indexes[index] = members
	}
	members[key] = struct{}{}
	return nil
}

func (c *MemoryCache) IndexMembers(_ context.Context, index string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	members := make([]string, 0, len(c.indexes[index]))
	for key := range c.indexes[index] {
		members = append(members, key)
	}
	return members, nil
}

func (c *MemoryCache) Close() error {
	return nil
}
