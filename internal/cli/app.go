package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"task-logger/internal/api"
	"task-logger/internal/cache"
	"task-logger/internal/config"
	"task-logger/internal/monitoring"
	"task-logger/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Command represents a CLI command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// App holds everything the commands run against once configuration is final
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	checks      map[string]monitoring.CheckFunc
	out         io.Writer
	closers     []io.Closer
}

// AppFactory builds an App from the final configuration
type AppFactory func(cfg *config.Config) (*App, error)

// NewApp opens the database and cache named by cfg and wires the business API over them
func NewApp(cfg *config.Config) (*App, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	container := services.NewServiceContainer(repo, c, cfg)

	app := NewAppWithAPI(api.NewBusinessAPI(container), cfg)
	app.checks = map[string]monitoring.CheckFunc{
		"database": repo.Ping,
		"cache":    c.Health,
	}
	// Closed in order: cache, then store
	app.closers = []io.Closer{c, repo}
	return app, nil
}

// NewAppWithAPI creates an App around an existing business API, used by tests
func NewAppWithAPI(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		checks:      map[string]monitoring.CheckFunc{},
	}
}

// Close releases the cache and the database, in that order
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
