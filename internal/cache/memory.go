package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemoryCache is a process-local cache backed by sync.Map
type MemoryCache struct {
	store sync.Map
	mutex sync.Mutex // serializes Incr
	stop  chan struct{}
	once  sync.Once
}

type cacheItem struct {
	value      []byte
	expiration time.Time // zero means no expiry
}

func (i *cacheItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// NewMemoryCache creates a memory cache and starts its expiry sweeper
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{stop: make(chan struct{})}

	go cache.cleanup(time.Minute)

	return cache
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}

	item := &cacheItem{value: data}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}
	c.store.Store(key, item)
	return nil
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.load(key)
	if !ok {
		return ErrCacheMiss
	}
	return decode(data, dest)
}

func (c *MemoryCache) load(key string) ([]byte, bool) {
	value, exists := c.store.Load(key)
	if !exists {
		return nil, false
	}

	item := value.(*cacheItem)
	if item.expired(time.Now()) {
		c.store.Delete(key)
		return nil, false
	}
	return item.value, true
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Incr increments a counter that never expires, starting from zero
func (c *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var n int64
	if data, ok := c.load(key); ok {
		if err := decode(data, &n); err != nil {
			return 0, err
		}
	}
	n++
	c.store.Store(key, &cacheItem{value: []byte(strconv.FormatInt(n, 10))})
	return n, nil
}

func (c *MemoryCache) Stats() map[string]interface{} {
	count := 0
	c.store.Range(func(_, _ interface{}) bool {
		count++
		return true
	})

	return map[string]interface{}{
		"items": count,
		"type":  "memory",
	}
}

func (c *MemoryCache) Health(ctx context.Context) error {
	return nil
}

// Close stops the expiry sweeper
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.store.Range(func(key, value interface{}) bool {
				if value.(*cacheItem).expired(now) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
