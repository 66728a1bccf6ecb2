package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasklogger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleYAML = `
database:
  dir: /var/lib/tasklogger
  query_timeout: 2s
server:
  port: 8081
  static_dir: web
  allowed_origins:
    - http://localhost:5173
cache:
  backend: none
validation:
  users:
    - Alice
    - Venkatakamesh
  enforce_date_order: true
application:
  environment: development
`

func TestLoader_Load_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, NewConfig().Server.Port, cfg.Server.Port)
}

func TestLoader_Load_ConfigFile(t *testing.T) {
	path := writeConfigFile(t, sampleYAML)

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tasklogger", cfg.Database.Dir)
	assert.Equal(t, "tasklogger.db", cfg.Database.Filename)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "web", cfg.Server.StaticDir)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, CacheBackendNone, cfg.Cache.Backend)
	assert.Equal(t, []string{"Alice", "Venkatakamesh"}, cfg.Validation.Users)
	assert.True(t, cfg.Validation.EnforceDateOrder)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoader_Load_ConfigFileFromEnvironment(t *testing.T) {
	t.Setenv(ConfigFileEnv, writeConfigFile(t, sampleYAML))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoader_Load_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, sampleYAML)
	t.Setenv("TL_PORT", "9090")

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoader_Load_MissingConfigFile(t *testing.T) {
	_, err := NewLoader().WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoader_Load_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, "cache:\n  backend: memcached\n")

	_, err := NewLoader().WithConfigFile(path).Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cache.backend", cfgErr.Field)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	path := writeConfigFile(t, sampleYAML)
	t.Setenv("TL_PORT", "9090")

	port := 7000
	dir := "/srv/data"
	verbose := true
	backend := CacheBackendMemory
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		ConfigFile:   &path,
		Port:         &port,
		DBDir:        &dir,
		Verbose:      &verbose,
		CacheBackend: &backend,
	})
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/srv/data", cfg.Database.Dir)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	// File values not overridden survive
	assert.Equal(t, "web", cfg.Server.StaticDir)
}

func TestLoader_LoadWithOverrides_Revalidates(t *testing.T) {
	port := 0
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Port: &port})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server.port", cfgErr.Field)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 42, ParseIntWithFallback("42", 1))
	assert.Equal(t, 1, ParseIntWithFallback("forty-two", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.True(t, ParseBoolWithFallback("maybe", true))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
	assert.Equal(t, []string{"a", "b"}, ParseListWithFallback(" a ,b, ", nil))
	assert.Equal(t, []string{"x"}, ParseListWithFallback(" , ", []string{"x"}))
}
