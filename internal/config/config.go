// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for relay.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete relay configuration.
type Config struct {
	// Service holds everything about the remote chat service.
	Service ServiceConfig `toml:"service"`

	// UI holds presentation preferences.
	UI UIConfig `toml:"ui"`

	// Log holds logging configuration.
	Log LogConfig `toml:"log"`
}

// ServiceConfig contains the chat service connection settings.
type ServiceConfig struct {
	// BaseURL is the chat service endpoint.
	BaseURL string `toml:"base_url"`
	// DefaultModel is requested when a message names no model.
	DefaultModel string `toml:"default_model"`
	// TimeoutSecs bounds non-streaming requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains presentation preferences.
type UIConfig struct {
	// HistoryOpen opens the history panel on startup.
	HistoryOpen bool `toml:"history_open"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Path is the log file location (empty = ~/.relay/relay.log).
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL:     "http://127.0.0.1:5000",
			TimeoutSecs: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the relay configuration directory (~/.relay).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".relay"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path, applies environment variable
// overrides, and validates the result. A missing file is not an error:
// defaults plus environment are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on the loaded configuration.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RELAY_BASE_URL"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := os.Getenv("RELAY_MODEL"); v != "" {
		cfg.Service.DefaultModel = v
	}
	if v := os.Getenv("RELAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service base_url %q", c.Service.BaseURL)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Service.TimeoutSecs < 0 {
		return fmt.Errorf("invalid timeout_secs %d", c.Service.TimeoutSecs)
	}
	return nil
}

// Save writes the configuration as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// LogPath returns the configured log file path, or the default under the
// relay directory.
func (c Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "relay.log"), nil
}
