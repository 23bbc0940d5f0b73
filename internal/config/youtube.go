package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvYouTubeBaseURL = "GUARDIAN_YOUTUBE_BASE_URL"
	EnvYouTubeTimeout = "GUARDIAN_YOUTUBE_TIMEOUT"
	EnvYouTubeKeyName = "GUARDIAN_YOUTUBE_KEY_NAME"
)

// YouTubeConfig holds the YouTube Data API parameters used for
// video metadata and comment enrichment.
type YouTubeConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	KeyName string `toml:"key_name"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *YouTubeConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *YouTubeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *YouTubeConfig) Merge(overlay *YouTubeConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.KeyName != "" {
		c.KeyName = overlay.KeyName
	}
}

func (c *YouTubeConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.KeyName == "" {
		c.KeyName = "youtube"
	}
}

func (c *YouTubeConfig) loadEnv() {
	if v := os.Getenv(EnvYouTubeBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvYouTubeTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvYouTubeKeyName); v != "" {
		c.KeyName = v
	}
}

func (c *YouTubeConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.KeyName == "" {
		return fmt.Errorf("key_name required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
