package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mkehler/worldscope/pkg/httputil"
	"github.com/mkehler/worldscope/pkg/integrations/restcountries"
	"github.com/mkehler/worldscope/pkg/storage"
)

// connectTimeout bounds backend connection attempts (redis, mongo).
const connectTimeout = 5 * time.Second

// Config is the worldscope configuration, read from
// ~/.config/worldscope/config.toml with WORLDSCOPE_* environment overrides.
// Every field has a working default; a missing file is not an error.
type Config struct {
	API     APIConfig     `toml:"api"`
	Cache   CacheConfig   `toml:"cache"`
	Storage StorageConfig `toml:"storage"`
	Redis   RedisConfig   `toml:"redis"`
	Mongo   MongoConfig   `toml:"mongo"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	// BaseURL of the countries API.
	BaseURL string `toml:"base_url"`
}

type CacheConfig struct {
	// Dir for cached API responses; empty means ~/.cache/worldscope.
	Dir string `toml:"dir"`
	// TTLHours before a cached response expires; 0 means never.
	TTLHours int `toml:"ttl_hours"`
}

type StorageConfig struct {
	// Backend selects where accounts and favorites live:
	// "file" (default), "memory", "redis", or "mongo".
	Backend string `toml:"backend"`
	// Dir for the file backend; empty means the XDG data directory.
	Dir string `toml:"dir"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type UIConfig struct {
	// DebounceMS is the search debounce delay in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API:     APIConfig{BaseURL: restcountries.DefaultBaseURL},
		Cache:   CacheConfig{TTLHours: 24},
		Storage: StorageConfig{Backend: "file"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		UI:      UIConfig{DebounceMS: 300},
	}
}

// ConfigPath returns the configuration file path, honoring XDG_CONFIG_HOME.
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file and applies environment overrides on top
// of the defaults. A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides config fields from WORLDSCOPE_* environment variables.
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&c.API.BaseURL, "WORLDSCOPE_API_URL")
	setString(&c.Cache.Dir, "WORLDSCOPE_CACHE_DIR")
	setInt(&c.Cache.TTLHours, "WORLDSCOPE_CACHE_TTL_HOURS")
	setString(&c.Storage.Backend, "WORLDSCOPE_STORAGE_BACKEND")
	setString(&c.Storage.Dir, "WORLDSCOPE_STORAGE_DIR")
	setString(&c.Redis.Addr, "WORLDSCOPE_REDIS_ADDR")
	setString(&c.Redis.Password, "WORLDSCOPE_REDIS_PASSWORD")
	setInt(&c.Redis.DB, "WORLDSCOPE_REDIS_DB")
	setString(&c.Mongo.URI, "WORLDSCOPE_MONGO_URI")
	setString(&c.Mongo.Database, "WORLDSCOPE_MONGO_DATABASE")
	setInt(&c.UI.DebounceMS, "WORLDSCOPE_DEBOUNCE_MS")
}

// Debounce returns the configured search debounce as a duration.
func (c *Config) Debounce() time.Duration {
	if c.UI.DebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.UI.DebounceMS) * time.Millisecond
}

// CacheTTL returns the configured response cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// openStore creates the storage backend the config selects.
func openStore(cfg *Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	case "memory":
		return storage.NewMemoryStore(), nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return storage.NewRedisStore(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return storage.NewMongoStore(ctx, storage.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, memory, redis, or mongo)", cfg.Storage.Backend)
	}
}

// newCountriesClient creates the API client, caching responses unless
// noCache is set.
func newCountriesClient(cfg *Config, noCache bool) (*restcountries.Client, error) {
	var opts []restcountries.Option
	if cfg.API.BaseURL != "" {
		opts = append(opts, restcountries.WithBaseURL(cfg.API.BaseURL))
	}
	if noCache {
		return restcountries.NewClient(nil, opts...), nil
	}
	cache, err := newResponseCache(cfg)
	if err != nil {
		// A broken cache directory should not block API access.
		return restcountries.NewClient(nil, opts...), nil
	}
	return restcountries.NewClient(cache, opts...), nil
}

// newResponseCache opens the file-based response cache in the configured
// directory.
func newResponseCache(cfg *Config) (*httputil.Cache, error) {
	dir, err := cacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return httputil.NewCache(dir, cfg.CacheTTL())
}

// cacheDir returns the response cache directory using the XDG standard
// (~/.cache/worldscope/) unless the config overrides it.
func cacheDir(cfg *Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
