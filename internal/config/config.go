package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds all configuration options for the task logger
type Config struct {
	Database    DatabaseConfig
	Server      ServerConfig
	RateLimit   RateLimitConfig
	Cache       CacheConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TL_DB_DIR"`
	Filename       string        `env:"TL_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TL_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TL_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TL_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"TL_HOST"`
	Port            int           `env:"TL_PORT"`
	StaticDir       string        `env:"TL_STATIC_DIR"`
	ReadTimeout     time.Duration `env:"TL_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"TL_SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `env:"TL_SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"TL_SERVER_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `env:"TL_ALLOWED_ORIGINS"`
}

// RateLimitConfig holds per-client request limits. Zero requests per minute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `env:"TL_RATE_LIMIT_RPM"`
	Burst             int `env:"TL_RATE_LIMIT_BURST"`
}

// CacheConfig holds summary cache configuration
type CacheConfig struct {
	Backend       string        `env:"TL_CACHE_BACKEND"`
	TTL           time.Duration `env:"TL_CACHE_TTL"`
	RedisAddr     string        `env:"TL_REDIS_ADDR"`
	RedisPassword string        `env:"TL_REDIS_PASSWORD"`
	RedisDB       int           `env:"TL_REDIS_DB"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	Users            []string `env:"TL_USERS"`
	TextMaxLength    int      `env:"TL_VALIDATION_TEXT_MAX"` // 0 means unlimited
	EnforceDateOrder bool     `env:"TL_VALIDATION_ENFORCE_DATE_ORDER"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Environment string        `env:"TL_ENV"`
	Timeout     time.Duration `env:"TL_APP_TIMEOUT"`
	Verbose     bool          `env:"TL_APP_VERBOSE"`
}

// DefaultUsers returns the users registered when none are configured
func DefaultUsers() []string {
	return []string{"Venkatakamesh"}
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            "./data",
			Filename:       "tasklogger.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Host:            "",
			Port:            3000,
			StaticDir:       "public",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 600,
			Burst:             50,
		},
		Cache: CacheConfig{
			Backend:   CacheBackendMemory,
			TTL:       30 * time.Second,
			RedisAddr: "localhost:6379",
		},
		Validation: ValidationConfig{
			Users:            DefaultUsers(),
			TextMaxLength:    0,
			EnforceDateOrder: false,
		},
		Application: ApplicationConfig{
			Environment: "production",
			Timeout:     60 * time.Second,
			Verbose:     false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// GetServerAddress returns the host:port the HTTP server listens on
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// IsDevelopment reports whether the application runs in a development environment
func (c *Config) IsDevelopment() bool {
	switch c.Application.Environment {
	case "development", "dev", "test":
		return true
	}
	return false
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TL_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TL_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TL_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if host := os.Getenv("TL_HOST"); host != "" {
		c.Server.Host = host
	}
	// PORT is honoured for platforms that inject it; TL_PORT wins when both are set
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = ParseIntWithFallback(port, c.Server.Port)
	}
	if port := os.Getenv("TL_PORT"); port != "" {
		c.Server.Port = ParseIntWithFallback(port, c.Server.Port)
	}
	if dir := os.Getenv("TL_STATIC_DIR"); dir != "" {
		c.Server.StaticDir = dir
	}
	if timeout := os.Getenv("TL_SERVER_READ_TIMEOUT"); timeout != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(timeout, c.Server.ReadTimeout)
	}
	if timeout := os.Getenv("TL_SERVER_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}
	if timeout := os.Getenv("TL_SERVER_IDLE_TIMEOUT"); timeout != "" {
		c.Server.IdleTimeout = ParseDurationWithFallback(timeout, c.Server.IdleTimeout)
	}
	if timeout := os.Getenv("TL_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if origins := os.Getenv("TL_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = ParseListWithFallback(origins, c.Server.AllowedOrigins)
	}

	// Rate limit configuration
	if rpm := os.Getenv("TL_RATE_LIMIT_RPM"); rpm != "" {
		c.RateLimit.RequestsPerMinute = ParseIntWithFallback(rpm, c.RateLimit.RequestsPerMinute)
	}
	if burst := os.Getenv("TL_RATE_LIMIT_BURST"); burst != "" {
		c.RateLimit.Burst = ParseIntWithFallback(burst, c.RateLimit.Burst)
	}

	// Cache configuration
	if backend := os.Getenv("TL_CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = backend
	}
	if ttl := os.Getenv("TL_CACHE_TTL"); ttl != "" {
		c.Cache.TTL = ParseDurationWithFallback(ttl, c.Cache.TTL)
	}
	if addr := os.Getenv("TL_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if password := os.Getenv("TL_REDIS_PASSWORD"); password != "" {
		c.Cache.RedisPassword = password
	}
	if db := os.Getenv("TL_REDIS_DB"); db != "" {
		c.Cache.RedisDB = ParseIntWithFallback(db, c.Cache.RedisDB)
	}

	// Validation configuration
	if users := os.Getenv("TL_USERS"); users != "" {
		c.Validation.Users = ParseListWithFallback(users, c.Validation.Users)
	}
	if maxLen := os.Getenv("TL_VALIDATION_TEXT_MAX"); maxLen != "" {
		c.Validation.TextMaxLength = ParseIntWithFallback(maxLen, c.Validation.TextMaxLength)
	}
	if order := os.Getenv("TL_VALIDATION_ENFORCE_DATE_ORDER"); order != "" {
		c.Validation.EnforceDateOrder = ParseBoolWithFallback(order, c.Validation.EnforceDateOrder)
	}

	// Application configuration
	if env := os.Getenv("TL_ENV"); env != "" {
		c.Application.Environment = env
	}
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: fmt.Sprintf("port must be between 1 and 65535, got %d", c.Server.Port)}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate rate limit configuration
	if c.RateLimit.RequestsPerMinute < 0 {
		return &ConfigError{Field: "rate_limit.requests_per_min", Message: "requests per minute cannot be negative"}
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst < 1 {
		return &ConfigError{Field: "rate_limit.burst", Message: "burst must be at least 1 when rate limiting is enabled"}
	}

	// Validate cache configuration
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendNone:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return &ConfigError{Field: "cache.redis_addr", Message: "redis address cannot be empty"}
		}
	default:
		return &ConfigError{Field: "cache.backend", Message: "cache backend must be one of: memory, redis, none"}
	}
	if c.Cache.Backend != CacheBackendNone && c.Cache.TTL <= 0 {
		return &ConfigError{Field: "cache.ttl", Message: "cache ttl must be positive"}
	}

	// Validate validation configuration
	if len(c.Validation.Users) == 0 {
		return &ConfigError{Field: "validation.users", Message: "at least one user must be configured"}
	}
	for _, u := range c.Validation.Users {
		if strings.TrimSpace(u) == "" {
			return &ConfigError{Field: "validation.users", Message: "user names cannot be blank"}
		}
	}
	if c.Validation.TextMaxLength < 0 {
		return &ConfigError{Field: "validation.text_max_length", Message: "text maximum length cannot be negative"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
