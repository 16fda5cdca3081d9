package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://restcountries.com/v3.1", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
}

func TestLoadConfig_ReadsTOMLFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := `
[api]
base_url = "http://localhost:8080/v3.1"

[storage]
backend = "memory"

[ui]
debounce_ms = 150
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v3.1", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	// Unset sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[storage]\nbackend = \"file\"\n"), 0o644))

	t.Setenv("WORLDSCOPE_STORAGE_BACKEND", "redis")
	t.Setenv("WORLDSCOPE_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("WORLDSCOPE_DEBOUNCE_MS", "500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
}

func TestLoadConfig_MalformedFileIsAnError(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml ["), 0o644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestOpenStore_Backends(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = "memory"
	store, err := openStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	cfg.Storage.Backend = "file"
	cfg.Storage.Dir = t.TempDir()
	store, err = openStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	cfg.Storage.Backend = "bogus"
	_, err = openStore(cfg)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestConfig_CacheTTL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL())

	cfg.Cache.TTLHours = 0
	assert.Equal(t, time.Duration(0), cfg.CacheTTL(), "zero means never expire")
}
