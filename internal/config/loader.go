package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix         = "HEROES"
	envConfigDir      = "HEROES_CONFIG_DIR"
	defaultConfigName = "config.yaml"
)

// Load resolves the client configuration and returns it with the config file path used.
//
// Values are layered defaults < config file < HEROES_* env vars < overrides, where only
// non-zero override fields apply. The merged result is validated, so a bad base URL
// from any layer fails here with ErrInvalidBaseURL. A missing config file is created
// with defaults; failing to create it is logged and not fatal.
func Load(logger *zerolog.Logger, explicitPath string, overrides Config) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	path := configPath(explicitPath)
	v := newViper(Default(), path)

	if err := v.ReadInConfig(); err != nil {
		if !isMissingFile(err) {
			return Config{}, path, fmt.Errorf("read config %s: %w", path, err)
		}
		seedConfigFile(logger, v, path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, path, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.UpdateFrom(overrides)

	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("validate config: %w", err)
	}
	return cfg, path, nil
}

func newViper(defaults Config, path string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	for key, value := range map[string]any{
		"base_url":  defaults.BaseURL,
		"log_level": defaults.LogLevel,
		"timeout":   defaults.Timeout,
		"source":    defaults.Source,
	} {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// seedConfigFile writes the defaults to path and re-reads it into v.
func seedConfigFile(logger *zerolog.Logger, v *viper.Viper, path string) {
	if err := writeConfig(path, Default()); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not create config file, using defaults")
		return
	}
	logger.Info().Str("path", path).Msg("created config file with defaults")

	if err := v.ReadInConfig(); err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("re-reading created config failed")
	}
}

// configPath picks the explicit path, then $HEROES_CONFIG_DIR/config.yaml, then ./config.yaml.
func configPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, defaultConfigName)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, defaultConfigName)
	}
	return defaultConfigName
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
