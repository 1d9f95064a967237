package db

import (
	"context"
	"sync"
	"time"

	"github.com/go-gorm/caches/v4"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryCacher keeps query results in process. Every write through gorm
// invalidates the whole store, so a lookup never outlives a customer create.
type memoryCacher struct {
	store map[string]memoryEntry
	ttl   time.Duration
	mu    sync.RWMutex
}

func (c *memoryCacher) expiry() time.Time {
	ttl := c.ttl
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return time.Now().Add(ttl)
}

func (c *memoryCacher) Get(ctx context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}

	if err := q.Unmarshal(entry.value); err != nil {
		return nil, err
	}

	return q, nil
}

func (c *memoryCacher) Store(ctx context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		c.store = make(map[string]memoryEntry)
	}

	c.store[key] = memoryEntry{value: res, expiresAt: c.expiry()}
	return nil
}

func (c *memoryCacher) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]memoryEntry)
	return nil
}
