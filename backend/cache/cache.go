// ABOUTME: In-memory cache with TTL-based expiration for computed comparisons
// ABOUTME: Thread-safe cache using sync.Map with singleflight-collapsed loads and background cleanup

package cache

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	data      any
	expiresAt time.Time
}

// Cache stores values for a fixed TTL. Concurrent loads of the same key share one computation.
type Cache struct {
	store   sync.Map
	ttl     time.Duration
	sfGroup singleflight.Group
	loads   atomic.Int64
	stop    chan struct{}
	once    sync.Once
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

func (c *Cache) Get(key string) (any, bool) {
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

func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Store(key, entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

// GetOrLoad returns the cached value for key, or runs load once across all concurrent
// callers and caches a successful result. The bool reports whether the value came from cache.
func (c *Cache) GetOrLoad(key string, load func() (any, error)) (any, bool, error) {
	if val, ok := c.Get(key); ok {
		return val, true, nil
	}

	val, err, shared := c.sfGroup.Do(key, func() (any, error) {
		c.loads.Add(1)
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if shared {
		slog.Debug("Cache load shared", "key", key)
	}
	return val, false, err
}

// Loads reports how many times GetOrLoad invoked a loader
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}

// Len counts unexpired entries
func (c *Cache) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, val any) bool {
		if !now.After(val.(entry).expiresAt) {
			n++
		}
		return true
	})
	return n
}

func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// Close stops the background cleanup goroutine
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}
