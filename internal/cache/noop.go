package cache

import (
	"context"
	"time"
)

// NoopCache never stores anything. Every Get misses.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) error { return ErrCacheMiss }

func (NoopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, key string) error { return nil }

func (NoopCache) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }

func (NoopCache) Stats() map[string]interface{} {
	return map[string]interface{}{"type": "none"}
}

func (NoopCache) Health(ctx context.Context) error { return nil }

func (NoopCache) Close() error { return nil }
