package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvScoringURL     = "GUARDIAN_SCORING_URL"
	EnvScoringTimeout = "GUARDIAN_SCORING_TIMEOUT"
)

// ScoringConfig holds the risk-scoring endpoint parameters.
type ScoringConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ScoringConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ScoringConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ScoringConfig) Merge(overlay *ScoringConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ScoringConfig) loadDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:5000/predict"
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
}

func (c *ScoringConfig) loadEnv() {
	if v := os.Getenv(EnvScoringURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvScoringTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ScoringConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
