// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaychat/relay-tui/internal/config"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Service.BaseURL = "http://from-file:1111"
	cfg.Service.DefaultModel = "file-model"
	require.NoError(t, config.Save(path, cfg))

	flagConfig = path
	flagBaseURL = "http://from-flag:2222"
	flagModel = "flag-model"
	t.Cleanup(func() {
		flagConfig, flagBaseURL, flagModel = "", "", ""
	})

	got, gotPath, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, "http://from-flag:2222", got.Service.BaseURL,
		"flags beat the file")
	assert.Equal(t, "flag-model", got.Service.DefaultModel)
}

func TestLoadConfigRejectsInvalidFlagURL(t *testing.T) {
	flagConfig = filepath.Join(t.TempDir(), "missing.toml")
	flagBaseURL = "not a url"
	t.Cleanup(func() {
		flagConfig, flagBaseURL = "", ""
	})

	_, _, err := loadConfig()
	assert.Error(t, err)
}

func TestNewClientAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Service.BaseURL = "http://svc:3333"
	cfg.Service.DefaultModel = "m"
	cfg.Service.TimeoutSecs = 7

	client := newClient(cfg, nil)
	assert.Equal(t, "http://svc:3333", client.GetConfig().BaseURL)
	assert.Equal(t, "m", client.DefaultModel())
	assert.Equal(t, float64(7), client.GetConfig().Timeout.Seconds())
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["ask"])
	assert.True(t, names["sessions"])
	assert.True(t, names["doctor"])
}
