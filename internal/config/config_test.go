// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Service.BaseURL)
	assert.Equal(t, 30, cfg.Service.TimeoutSecs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Service.BaseURL = "http://example.test:9999"
	cfg.Service.DefaultModel = "relay-large"
	cfg.UI.HistoryOpen = true
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test:9999", got.Service.BaseURL)
	assert.Equal(t, "relay-large", got.Service.DefaultModel)
	assert.True(t, got.UI.HistoryOpen)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RELAY_BASE_URL", "http://env.test:1234")
	t.Setenv("RELAY_MODEL", "env-model")
	t.Setenv("RELAY_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "http://env.test:1234", cfg.Service.BaseURL)
	assert.Equal(t, "env-model", cfg.Service.DefaultModel)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := Default()
	bad.Service.BaseURL = "not a url"
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Log.Level = "verbose"
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Service.TimeoutSecs = -1
	assert.Error(t, bad.Validate())
}

func TestLogPath(t *testing.T) {
	cfg := Default()
	cfg.Log.Path = "/tmp/custom.log"
	got, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", got)

	cfg.Log.Path = ""
	got, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Contains(t, got, ".relay")
}
