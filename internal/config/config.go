package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all kintai configuration.
type Config struct {
	Store    StoreConfig `yaml:"store"`
	Cache    CacheConfig `yaml:"cache"`
	Timezone string      `yaml:"timezone"` // IANA zone for calendar-day math; empty = process local
	Log      LogConfig   `yaml:"log"`
	User     string      `yaml:"user"` // default user for record listing; empty = all
}

// StoreConfig holds record-store connection settings.
type StoreConfig struct {
	URL     string   `yaml:"url"`
	Timeout Duration `yaml:"timeout"`
}

// Duration lets YAML carry Go duration strings ("15s", "1m30s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// CacheConfig holds local snapshot settings.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads the YAML config at path (missing file means defaults), then
// applies KINTAI_* environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults + env only.
	case err != nil:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = defaultCachePath()
	}
	if cfg.Store.Timeout <= 0 {
		cfg.Store.Timeout = Duration(15 * time.Second)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".kintai", "config.yaml")
}

func defaults() Config {
	return Config{
		Store: StoreConfig{Timeout: Duration(15 * time.Second)},
		Log:   LogConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	cfg.Store.URL = getenv("KINTAI_STORE_URL", cfg.Store.URL)
	cfg.Cache.Path = getenv("KINTAI_CACHE_PATH", cfg.Cache.Path)
	cfg.Timezone = getenv("KINTAI_TIMEZONE", cfg.Timezone)
	cfg.Log.Level = getenv("KINTAI_LOG_LEVEL", cfg.Log.Level)
	cfg.User = getenv("KINTAI_USER", cfg.User)
	if v := os.Getenv("KINTAI_STORE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Store.Timeout = Duration(d)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCachePath() string {
	return filepath.Join(homeDir(), ".kintai", "cbo-cache.json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
