// Package config handles configuration loading and validation for lintlens.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// View types accepted by viewer.view_type.
const (
	ViewTypeUnified = "unified"
	ViewTypeSplit   = "split"
)

// Config holds the application configuration.
type Config struct {
	API       APIConfig         `yaml:"api"`
	Viewer    ViewerConfig      `yaml:"viewer"`
	Languages map[string]string `yaml:"languages"` // glob pattern -> highlighter language
}

// APIConfig configures the remote review API used by `lintlens fetch`.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Version  string        `yaml:"version"`   // path segment, e.g. "v4"
	TokenEnv string        `yaml:"token_env"` // env var holding the bearer token
	Timeout  time.Duration `yaml:"timeout"`
}

// ViewerConfig configures the interactive viewer.
type ViewerConfig struct {
	ViewType string        `yaml:"view_type"`
	Theme    string        `yaml:"theme"`
	ToastTTL time.Duration `yaml:"toast_ttl"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8000",
			Version:  "v4",
			TokenEnv: "LINTLENS_API_TOKEN",
			Timeout:  30 * time.Second,
		},
		Viewer: ViewerConfig{
			ViewType: ViewTypeUnified,
			Theme:    "tokyo-night",
			ToastTTL: 5 * time.Second,
		},
		Languages: map[string]string{},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Version == "" {
		c.API.Version = defaults.API.Version
	}
	if c.API.TokenEnv == "" {
		c.API.TokenEnv = defaults.API.TokenEnv
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Viewer.ViewType == "" {
		c.Viewer.ViewType = defaults.Viewer.ViewType
	}
	if c.Viewer.Theme == "" {
		c.Viewer.Theme = defaults.Viewer.Theme
	}
	if c.Viewer.ToastTTL == 0 {
		c.Viewer.ToastTTL = defaults.Viewer.ToastTTL
	}
	if c.Languages == nil {
		c.Languages = map[string]string{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	switch c.Viewer.ViewType {
	case ViewTypeUnified, ViewTypeSplit:
	default:
		return fmt.Errorf("viewer.view_type must be %q or %q, got %q", ViewTypeUnified, ViewTypeSplit, c.Viewer.ViewType)
	}

	if c.Viewer.ToastTTL < 0 {
		return fmt.Errorf("viewer.toast_ttl cannot be negative")
	}

	return nil
}

// Token returns the API token from the configured environment variable.
func (c *Config) Token() string {
	if c.API.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.API.TokenEnv)
}
