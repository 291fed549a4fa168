package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// BackfillConfig configures the historical backfill engine
type BackfillConfig struct {
	// Enabled runs the backfill engine on startup
	Enabled bool `yaml:"enabled"`

	// NoGaps writes a gap-marker record instead of skipping a day
	// whose fetch failed, so the day is never re-attempted
	NoGaps bool `yaml:"no_gaps"`

	// RequestInterval is the pause between source requests; the source
	// rate-limits aggressively, so one request per second by default
	RequestInterval time.Duration `yaml:"request_interval"`

	// RerunInterval re-runs the engine periodically to pick up new days;
	// zero means a single run at startup
	RerunInterval time.Duration `yaml:"rerun_interval"`
}

// UnmarshalYAML accepts durations in time.ParseDuration notation
func (c *BackfillConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled         bool   `yaml:"enabled"`
		NoGaps          bool   `yaml:"no_gaps"`
		RequestInterval string `yaml:"request_interval"`
		RerunInterval   string `yaml:"rerun_interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Enabled = raw.Enabled
	c.NoGaps = raw.NoGaps

	var err error
	if c.RequestInterval, err = parseDuration(raw.RequestInterval); err != nil {
		return fmt.Errorf("backfill.request_interval: %w", err)
	}
	if c.RerunInterval, err = parseDuration(raw.RerunInterval); err != nil {
		return fmt.Errorf("backfill.rerun_interval: %w", err)
	}
	return nil
}

func (c *BackfillConfig) applyDefaults() {
	if c.RequestInterval <= 0 {
		c.RequestInterval = time.Second
	}
}

// DefaultBackfillConfig returns the backfill configuration used when
// the config file has no backfill section
func DefaultBackfillConfig() BackfillConfig {
	return BackfillConfig{
		Enabled:         true,
		NoGaps:          false,
		RequestInterval: time.Second,
	}
}
