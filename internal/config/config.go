package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrInvalidBaseURL is returned when the configured base URL is not an absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("invalid base url")

// Config holds client configuration values.
type Config struct {
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Source   string        `mapstructure:"source" yaml:"source"`
}

// Default returns configuration with reasonable starter defaults.
// A zero Timeout leaves requests bounded only by the caller's context.
func Default() Config {
	return Config{
		BaseURL:  "http://localhost:8080/api/heroes",
		LogLevel: "info",
		Source:   "HeroService",
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.Source != "" {
		c.Source = other.Source
	}
}

// Validate checks that the configuration can be used to build a client.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout: %s", c.Timeout)
	}
	return nil
}
