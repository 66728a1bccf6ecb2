package config

import (
	"context"
	"fmt"
	"os"

	"task-logger/internal/repository/sqlite"
)

// CreateRepository creates a repository instance using the configuration system.
// The database directory is created if missing and the configured users are registered.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Get database path from configuration
	dbPath := config.GetDatabasePath()

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := registerUsers(repo, config); err != nil {
		repo.Close()
		return nil, err
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(sqlite.InMemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	if err := registerUsers(repo, NewConfig()); err != nil {
		repo.Close()
		return nil, err
	}

	return repo, nil
}

func registerUsers(repo sqlite.Repository, config *Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.GetWriteTimeout())
	defer cancel()

	if err := repo.RegisterUsers(ctx, config.Validation.Users); err != nil {
		return fmt.Errorf("failed to register users: %w", err)
	}
	return nil
}
