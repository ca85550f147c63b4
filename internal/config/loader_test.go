package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad_WritesDefaultConfigWhenMissing(t *testing.T) {
	disabledLogger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(&disabledLogger, path, Config{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	disabledLogger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("base_url: http://file.example/api/heroes\nlog_level: debug\ntimeout: 3s\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(&disabledLogger, path, Config{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://file.example/api/heroes" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, want 3s", cfg.Timeout)
	}
	if cfg.Source != "HeroService" {
		t.Errorf("Source = %q, want default", cfg.Source)
	}

	t.Setenv("HEROES_BASE_URL", "http://env.example/api/heroes")
	cfg, _, err = Load(&disabledLogger, path, Config{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://env.example/api/heroes" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want file value", cfg.LogLevel)
	}
}

func TestLoad_ValidatesMergedConfig(t *testing.T) {
	disabledLogger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "config.yaml")

	t.Setenv("HEROES_BASE_URL", "api/heroes")
	if _, _, err := Load(&disabledLogger, path, Config{}); !errors.Is(err, ErrInvalidBaseURL) {
		t.Fatalf("expected ErrInvalidBaseURL from env value, got %v", err)
	}

	cfg, _, err := Load(&disabledLogger, path, Config{BaseURL: "https://flag.example/api/heroes", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("override should replace the bad env value: %v", err)
	}
	if cfg.BaseURL != "https://flag.example/api/heroes" {
		t.Errorf("BaseURL = %q, want override", cfg.BaseURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %s, want 2s", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

func TestLoad_ConfigDirFromEnv(t *testing.T) {
	disabledLogger := zerolog.Nop()
	dir := t.TempDir()
	t.Setenv("HEROES_CONFIG_DIR", dir)

	_, resolved, err := Load(&disabledLogger, "", Config{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(dir, "config.yaml"); resolved != want {
		t.Errorf("resolved path = %q, want %q", resolved, want)
	}
}

func TestUpdateFrom_OnlyNonZero(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Timeout: time.Second})

	if cfg.BaseURL != Default().BaseURL {
		t.Errorf("BaseURL changed unexpectedly: %q", cfg.BaseURL)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("Timeout = %s, want 1s", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		timeout time.Duration
		wantErr bool
	}{
		{"default", Default().BaseURL, 0, false},
		{"https", "https://heroes.example/api/heroes", time.Second, false},
		{"relative", "api/heroes", 0, true},
		{"ftp", "ftp://heroes.example/heroes", 0, true},
		{"negative timeout", Default().BaseURL, -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.BaseURL = tt.baseURL
			cfg.Timeout = tt.timeout

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := Default()
	cfg.BaseURL = "api/heroes"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidBaseURL) {
		t.Fatalf("expected ErrInvalidBaseURL, got %v", err)
	}
}
