//go:build unit || e2e

package fakestore

import (
	"context"
	"path"
	"sync"
	"time"

	"telemed-booking/internal/usecase/shared"
)

// Cache is an in-memory shared.Cache. TTLs are ignored.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func NewCache() *Cache {
	return &Cache{entries: map[string][]byte{}}
}

var _ shared.Cache = (*Cache)(nil)

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, shared.ErrCacheMiss
	}
	return v, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *Cache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	for k := range c.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.entries, k)
		}
	}
	return nil
}

// Invalidations lists every pattern passed to DeleteByPattern.
func (c *Cache) Invalidations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deletes...)
}
