// ABOUTME: In-memory query cache with TTL-based expiration
// ABOUTME: Supports prefix invalidation after mutations and deduplicated loads

package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a query result is considered fresh
const DefaultTTL = 5 * time.Minute

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache holds query results keyed by request path
type Cache struct {
	store  sync.Map
	ttl    time.Duration
	loads  singleflight.Group
	stop   chan struct{}
	closed sync.Once
}

// New creates a cache and starts its background cleanup. A ttl of zero or
// less disables caching: every Get misses.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	if ttl > 0 {
		go c.startCleanup(cleanupInterval(ttl))
	}
	return c
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return ttl
	}
	return time.Minute
}

// Get returns a fresh value for key
func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

// Set stores a value with the cache's TTL
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.store.Store(key, entry{data: value, expiresAt: time.Now().Add(ttl)})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// Clear removes a single key
func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// InvalidatePrefix removes every key starting with prefix and returns how
// many were dropped
func (c *Cache) InvalidatePrefix(prefix string) int {
	n := 0
	c.store.Range(func(key, _ interface{}) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.store.Delete(key)
			n++
		}
		return true
	})
	slog.Debug("Cache invalidated", "prefix", prefix, "keys", n)
	return n
}

// Flush removes everything, e.g. after the session changes hands
func (c *Cache) Flush() {
	c.InvalidatePrefix("")
}

// GetOrLoad returns the cached value for key or calls load once, sharing the
// result with concurrent callers for the same key. Errors are not cached.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.loads.Do(key, func() (interface{}, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	return v, err
}

// Close stops the background cleanup
func (c *Cache) Close() {
	c.closed.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val interface{}) bool {
				e := val.(entry)
				if now.After(e.expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
