package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// SnapshotConfig configures the current-prices snapshot cache
type SnapshotConfig struct {
	// TTL is how long a fetched snapshot stays valid; reads within the
	// window are served from cache to stay under source rate limits
	TTL time.Duration `yaml:"ttl"`

	// RefreshInterval drives the background refresh that keeps the
	// /metrics price gauges warm; zero disables background refresh
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// UnmarshalYAML accepts durations in time.ParseDuration notation
func (c *SnapshotConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TTL             string `yaml:"ttl"`
		RefreshInterval string `yaml:"refresh_interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	var err error
	if c.TTL, err = parseDuration(raw.TTL); err != nil {
		return fmt.Errorf("snapshot.ttl: %w", err)
	}
	if c.RefreshInterval, err = parseDuration(raw.RefreshInterval); err != nil {
		return fmt.Errorf("snapshot.refresh_interval: %w", err)
	}
	return nil
}

func (c *SnapshotConfig) applyDefaults() {
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
}

// parseDuration parses an optional duration value, empty means unset
func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	return time.ParseDuration(value)
}
