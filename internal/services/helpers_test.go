package services

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"task-logger/internal/cache"
	"task-logger/internal/config"
	"task-logger/internal/domain"
	"task-logger/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) sqlite.Repository {
	repo, err := sqlite.New(sqlite.InMemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RegisterUsers(context.Background(), []string{"Venkatakamesh", "Alice"}))
	return repo
}

func setupServices(t *testing.T, c cache.Cache) (*ServiceContainer, sqlite.Repository) {
	repo := setupRepository(t)

	cfg := config.NewConfig()
	cfg.Validation.Users = []string{"Venkatakamesh", "Alice"}

	return NewServiceContainer(repo, c, cfg), repo
}

func validInput() domain.TaskLogInput {
	return domain.InputFromFields(domain.TaskLogFields{
		Task:      "Fix bug",
		Client:    "Acme",
		Team:      domain.TeamBuild,
		User:      "Venkatakamesh",
		Hours:     1,
		Minutes:   30,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		Status:    domain.StatusInProgress,
	})
}

func inputWith(modify func(f *domain.TaskLogFields)) domain.TaskLogInput {
	in := validInput()
	fields := in.Fields()
	modify(&fields)
	return domain.InputFromFields(fields)
}

// countingCache records hits and can be switched into a failing mode
type countingCache struct {
	cache.Cache
	mu     sync.Mutex
	hits   int
	failed bool
}

var errCacheDown = stderrors.New("cache down")

func newCountingCache() *countingCache {
	return &countingCache{Cache: cache.NewMemoryCache()}
}

func (c *countingCache) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = true
}

func (c *countingCache) restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = false
}

func (c *countingCache) down() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

func (c *countingCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.down() {
		return errCacheDown
	}
	err := c.Cache.Get(ctx, key, dest)
	if err == nil && key != generationKey {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
	}
	return err
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.down() {
		return errCacheDown
	}
	return c.Cache.Set(ctx, key, value, ttl)
}

func (c *countingCache) Incr(ctx context.Context, key string) (int64, error) {
	if c.down() {
		return 0, errCacheDown
	}
	return c.Cache.Incr(ctx, key)
}

func (c *countingCache) hitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}
