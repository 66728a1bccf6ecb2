package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"task-logger/internal/config"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encodable values with a TTL.
// Counters created by Incr are read back with Get into an integer.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	Stats() map[string]interface{}
	Health(ctx context.Context) error
	Close() error
}

// New builds the cache backend selected by the configuration
func New(cfg *config.Config) (Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		return NewMemoryCache(), nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		return NewRedisCache(client, DefaultKeyPrefix), nil
	case config.CacheBackendNone:
		return NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return data, nil
}

func decode(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}
