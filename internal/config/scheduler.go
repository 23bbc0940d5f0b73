package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvSchedulerInterval = "GUARDIAN_SCHEDULER_INTERVAL"
	EnvSchedulerEnabled  = "GUARDIAN_SCHEDULER_ENABLED"
)

// SchedulerConfig controls the recurring risk evaluation loops.
type SchedulerConfig struct {
	Interval string `toml:"interval"`
	Enabled  *bool  `toml:"enabled"`
}

// IntervalDuration returns Interval as a time.Duration.
func (c *SchedulerConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	return d
}

// IsEnabled reports whether recurring evaluation loops should run.
func (c *SchedulerConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SchedulerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SchedulerConfig) Merge(overlay *SchedulerConfig) {
	if overlay.Interval != "" {
		c.Interval = overlay.Interval
	}
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
}

func (c *SchedulerConfig) loadDefaults() {
	if c.Interval == "" {
		c.Interval = "1h"
	}
}

func (c *SchedulerConfig) loadEnv() {
	if v := os.Getenv(EnvSchedulerInterval); v != "" {
		c.Interval = v
	}
	if v := os.Getenv(EnvSchedulerEnabled); v != "" {
		enabled := v == "true" || v == "1"
		c.Enabled = &enabled
	}
}

func (c *SchedulerConfig) validate() error {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}
