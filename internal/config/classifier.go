package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvClassifierURL     = "GUARDIAN_CLASSIFIER_URL"
	EnvClassifierTimeout = "GUARDIAN_CLASSIFIER_TIMEOUT"
	EnvClassifierKeyName = "GUARDIAN_CLASSIFIER_KEY_NAME"
)

// ClassifierConfig holds the zero-shot classification endpoint parameters.
// KeyName is the logical credential name looked up at classification time.
type ClassifierConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
	KeyName string `toml:"key_name"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ClassifierConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ClassifierConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifierConfig) Merge(overlay *ClassifierConfig) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.KeyName != "" {
		c.KeyName = overlay.KeyName
	}
}

func (c *ClassifierConfig) loadDefaults() {
	if c.URL == "" {
		c.URL = "https://router.huggingface.co/hf-inference/models/facebook/bart-large-mnli"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.KeyName == "" {
		c.KeyName = "huggingface"
	}
}

func (c *ClassifierConfig) loadEnv() {
	if v := os.Getenv(EnvClassifierURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvClassifierTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvClassifierKeyName); v != "" {
		c.KeyName = v
	}
}

func (c *ClassifierConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("url required")
	}
	if c.KeyName == "" {
		return fmt.Errorf("key_name required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
