// Package config loads webterm settings from defaults, an optional YAML file
// and WEBTERM_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. WEBTERM_LISTEN_ADDR.
const EnvPrefix = "WEBTERM_"

// Store backends for the server history log.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds both server and client settings.
type Config struct {
	ListenAddr          string        `mapstructure:"listen_addr"`
	Store               string        `mapstructure:"store"`
	RedisAddr           string        `mapstructure:"redis_addr"`
	RedisPrefix         string        `mapstructure:"redis_prefix"`
	SQLitePath          string        `mapstructure:"sqlite_path"`
	DefaultLocation     string        `mapstructure:"default_location"`
	SanitizeErrors      bool          `mapstructure:"sanitize_errors"`
	GenericErrorMessage string        `mapstructure:"generic_error_message"`
	DocsEnabled         bool          `mapstructure:"docs_enabled"`
	WeatherURL          string        `mapstructure:"weather_url"`
	ProviderTimeout     time.Duration `mapstructure:"provider_timeout"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	LogLevel            string        `mapstructure:"log_level"`

	// Client side.
	ServerURL string `mapstructure:"server_url"`
	StateDir  string `mapstructure:"state_dir"`
	// StateKey is a base64 AES-256 key. When set, client state is encrypted at rest.
	StateKey string `mapstructure:"state_key"`
}

func defaults() map[string]any {
	return map[string]any{
		"listen_addr":           ":8000",
		"store":                 StoreMemory,
		"redis_addr":            "localhost:6379",
		"redis_prefix":          "webterm:history:",
		"sqlite_path":           "webterm.db",
		"default_location":      "",
		"sanitize_errors":       true,
		"generic_error_message": "An internal error occurred. Please try again later.",
		"docs_enabled":          false,
		"weather_url":           "https://wttr.in",
		"provider_timeout":      "5s",
		"cache_ttl":             "10m",
		"log_level":             "info",
		"server_url":            "http://localhost:8000",
		"state_dir":             ".webterm",
		"state_key":             "",
	}
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := decode(defaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load builds the configuration. An empty path skips the file layer;
// a non-empty path must exist.
func Load(path string) (Config, error) {
	raw := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for k, v := range file {
			raw[k] = v
		}
	}

	for key := range defaults() {
		if v, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	cfg, err := decode(raw)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("store %q requires redis_addr", c.Store)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("store %q requires sqlite_path", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q (want memory, redis or sqlite)", c.Store)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider_timeout must be positive, got %s", c.ProviderTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	return nil
}
