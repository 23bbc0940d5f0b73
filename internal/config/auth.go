package config

import (
	"fmt"
	"os"
)

const (
	EnvAuthEnabled  = "GUARDIAN_AUTH_ENABLED"
	EnvAuthIssuer   = "GUARDIAN_AUTH_ISSUER"
	EnvAuthAudience = "GUARDIAN_AUTH_AUDIENCE"
)

// AuthConfig holds OIDC token verification parameters. When disabled,
// API requests are accepted without bearer tokens.
type AuthConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// IsEnabled reports whether bearer token verification is active.
func (c *AuthConfig) IsEnabled() bool {
	return c.Enabled != nil && *c.Enabled
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthEnabled); v != "" {
		enabled := v == "true" || v == "1"
		c.Enabled = &enabled
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthAudience); v != "" {
		c.Audience = v
	}
}

func (c *AuthConfig) validate() error {
	if c.IsEnabled() {
		if c.Issuer == "" {
			return fmt.Errorf("issuer required when auth is enabled")
		}
		if c.Audience == "" {
			return fmt.Errorf("audience required when auth is enabled")
		}
	}
	return nil
}
