package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/steviee/go-bstats/internal/brawlstars"
	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for bstats.
type Config struct {
	Token        string          `yaml:"token" mapstructure:"token"`
	Timeout      int             `yaml:"timeout" mapstructure:"timeout"`
	Asynchronous bool            `yaml:"asynchronous" mapstructure:"asynchronous"`
	BaseURL      string          `yaml:"base_url" mapstructure:"base_url"`
	StrictTags   bool            `yaml:"strict_tags" mapstructure:"strict_tags"`
	MaxInFlight  int             `yaml:"max_in_flight" mapstructure:"max_in_flight"`
	Cache        CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Logging      LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Dashboard    DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
}

// CacheConfig holds response cache configuration.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	TTL     int  `yaml:"ttl" mapstructure:"ttl"`
	Size    int  `yaml:"size" mapstructure:"size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DashboardConfig holds dashboard configuration.
type DashboardConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
	Region          string        `yaml:"region" mapstructure:"region"`
	Limit           int           `yaml:"limit" mapstructure:"limit"`
}

// DefaultConfig returns a Config with sensible default values. The token is
// left empty.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     int(brawlstars.DefaultTimeout / time.Second),
		BaseURL:     brawlstars.DefaultBaseURL,
		MaxInFlight: brawlstars.DefaultMaxInFlight,
		Cache: CacheConfig{
			Enabled: true,
			TTL:     int(brawlstars.DefaultCacheTTL / time.Second),
			Size:    brawlstars.DefaultCacheSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Dashboard: DashboardConfig{
			RefreshInterval: 5 * time.Minute,
			Region:          brawlstars.GlobalRegion,
			Limit:           10,
		},
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults. A corrupted file is moved aside to path.corrupted and the
// defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		backupPath := path + ".corrupted"
		if backupErr := os.Rename(path, backupPath); backupErr != nil {
			return nil, fmt.Errorf("config file is corrupted and failed to create backup: %w (original error: %v)", backupErr, err)
		}
		return DefaultConfig(), nil
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path. The file is only readable by the
// owner since it holds the API token.
func Save(path string, cfg *Config) error {
	return save(path, cfg, AtomicWrite)
}

// Replace is like Save but keeps the previous file as path.bak.
func Replace(path string, cfg *Config) error {
	return save(path, cfg, AtomicWriteWithBackup)
}

func save(path string, cfg *Config, write func(string, []byte, os.FileMode) error) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := write(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration. An empty token is allowed here; the
// client rejects it when a command actually needs the API.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive number of seconds, got %d", cfg.Timeout)
	}

	if cfg.MaxInFlight < 0 {
		return fmt.Errorf("max in flight must be >= 0, got %d", cfg.MaxInFlight)
	}

	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0, got %d", cfg.Cache.TTL)
	}

	if cfg.Cache.Size < 0 {
		return fmt.Errorf("cache size must be >= 0, got %d", cfg.Cache.Size)
	}

	if !slices.Contains(validLogLevels, cfg.Logging.Level) {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	if cfg.Dashboard.RefreshInterval < 10*time.Second {
		return fmt.Errorf("dashboard refresh interval must be >= 10s, got %v", cfg.Dashboard.RefreshInterval)
	}

	if cfg.Dashboard.Limit < 1 || cfg.Dashboard.Limit > brawlstars.MaxLeaderboardLimit {
		return fmt.Errorf("dashboard limit must be between 1 and %d, got %d", brawlstars.MaxLeaderboardLimit, cfg.Dashboard.Limit)
	}

	if r := cfg.Dashboard.Region; r != brawlstars.GlobalRegion && len(r) != 2 {
		return fmt.Errorf("dashboard region must be %q or a 2-letter country code, got %q", brawlstars.GlobalRegion, r)
	}

	return nil
}

// ClientConfig converts the file configuration into a client configuration.
func (c *Config) ClientConfig() *brawlstars.Config {
	return &brawlstars.Config{
		Token:        c.Token,
		BaseURL:      c.BaseURL,
		Timeout:      time.Duration(c.Timeout) * time.Second,
		CacheSize:    c.Cache.Size,
		CacheTTL:     time.Duration(c.Cache.TTL) * time.Second,
		DisableCache: !c.Cache.Enabled,
		StrictTags:   c.StrictTags,
		MaxInFlight:  c.MaxInFlight,
	}
}

// Redacted returns a copy with the token masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.Token = RedactToken(c.Token)
	return &out
}

// RedactToken masks all but the last four characters of a token.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
