package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SetDefaults registers every configuration key with its default value and
// enables BSTATS_ environment overrides. Nested keys map to underscores, so
// cache.ttl is read from BSTATS_CACHE_TTL.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("token", d.Token)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("asynchronous", d.Asynchronous)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("strict_tags", d.StrictTags)
	v.SetDefault("max_in_flight", d.MaxInFlight)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("dashboard.refresh_interval", d.Dashboard.RefreshInterval)
	v.SetDefault("dashboard.region", d.Dashboard.Region)
	v.SetDefault("dashboard.limit", d.Dashboard.Limit)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper builds a validated Config from the merged file, environment and
// flag values held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
