package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable holding a config file path
const ConfigFileEnv = "TL_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile sets the YAML file read between defaults and environment
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if one is named
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file
	path := l.configFile
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := l.config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != "" {
		l.configFile = *overrides.ConfigFile
	}

	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile reads a YAML config file. Keys absent from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Database configuration
	if v.IsSet("database.dir") {
		c.Database.Dir = v.GetString("database.dir")
	}
	if v.IsSet("database.filename") {
		c.Database.Filename = v.GetString("database.filename")
	}
	if v.IsSet("database.query_timeout") {
		c.Database.QueryTimeout = v.GetDuration("database.query_timeout")
	}
	if v.IsSet("database.write_timeout") {
		c.Database.WriteTimeout = v.GetDuration("database.write_timeout")
	}
	if v.IsSet("database.dir_permissions") {
		c.Database.DirPermissions = ParseUint32WithFallback(v.GetString("database.dir_permissions"), 8, c.Database.DirPermissions)
	}

	// Server configuration
	if v.IsSet("server.host") {
		c.Server.Host = v.GetString("server.host")
	}
	if v.IsSet("server.port") {
		c.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("server.static_dir") {
		c.Server.StaticDir = v.GetString("server.static_dir")
	}
	if v.IsSet("server.read_timeout") {
		c.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		c.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.idle_timeout") {
		c.Server.IdleTimeout = v.GetDuration("server.idle_timeout")
	}
	if v.IsSet("server.shutdown_timeout") {
		c.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	}
	if v.IsSet("server.allowed_origins") {
		c.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}

	// Rate limit configuration
	if v.IsSet("rate_limit.requests_per_min") {
		c.RateLimit.RequestsPerMinute = v.GetInt("rate_limit.requests_per_min")
	}
	if v.IsSet("rate_limit.burst") {
		c.RateLimit.Burst = v.GetInt("rate_limit.burst")
	}

	// Cache configuration
	if v.IsSet("cache.backend") {
		c.Cache.Backend = v.GetString("cache.backend")
	}
	if v.IsSet("cache.ttl") {
		c.Cache.TTL = v.GetDuration("cache.ttl")
	}
	if v.IsSet("cache.redis_addr") {
		c.Cache.RedisAddr = v.GetString("cache.redis_addr")
	}
	if v.IsSet("cache.redis_password") {
		c.Cache.RedisPassword = v.GetString("cache.redis_password")
	}
	if v.IsSet("cache.redis_db") {
		c.Cache.RedisDB = v.GetInt("cache.redis_db")
	}

	// Validation configuration
	if v.IsSet("validation.users") {
		c.Validation.Users = v.GetStringSlice("validation.users")
	}
	if v.IsSet("validation.text_max_length") {
		c.Validation.TextMaxLength = v.GetInt("validation.text_max_length")
	}
	if v.IsSet("validation.enforce_date_order") {
		c.Validation.EnforceDateOrder = v.GetBool("validation.enforce_date_order")
	}

	// Application configuration
	if v.IsSet("application.environment") {
		c.Application.Environment = v.GetString("application.environment")
	}
	if v.IsSet("application.timeout") {
		c.Application.Timeout = v.GetDuration("application.timeout")
	}
	if v.IsSet("application.verbose") {
		c.Application.Verbose = v.GetBool("application.verbose")
	}

	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Server overrides
	Host      *string
	Port      *int
	StaticDir *string

	// Cache overrides
	CacheBackend *string

	// Application overrides
	Environment *string
	Timeout     *time.Duration
	Verbose     *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	// Server overrides
	if overrides.Host != nil {
		config.Server.Host = *overrides.Host
	}
	if overrides.Port != nil {
		config.Server.Port = *overrides.Port
	}
	if overrides.StaticDir != nil {
		config.Server.StaticDir = *overrides.StaticDir
	}

	// Cache overrides
	if overrides.CacheBackend != nil {
		config.Cache.Backend = *overrides.CacheBackend
	}

	// Application overrides
	if overrides.Environment != nil {
		config.Application.Environment = *overrides.Environment
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

// ParseListWithFallback splits a comma separated list, dropping blank items.
// An input with no items yields the fallback.
func ParseListWithFallback(s string, fallback []string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
