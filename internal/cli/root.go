// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relaychat/relay-tui/internal/api"
	"github.com/relaychat/relay-tui/internal/config"
	"github.com/relaychat/relay-tui/internal/logging"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

var (
	flagConfig  string
	flagBaseURL string
	flagModel   string
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Terminal client for the relay chat service",
	Long: `relay is a terminal client for the relay chat service.

Run it with no arguments to start the full-screen chat interface.
Subcommands cover scripting use:

  relay ask "question"     Stream a one-shot answer to stdout
  relay sessions list      List saved conversations
  relay sessions delete    Delete a conversation
  relay doctor             Check service connectivity`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the CLI.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
	rootCmd.SetVersionTemplate("relay {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.relay/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Chat service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Model to request (overrides config)")
}

// =============================================================================
// SHARED BOOTSTRAP
// =============================================================================

// loadConfig resolves the effective configuration: file, environment,
// then command-line flags.
func loadConfig() (config.Config, string, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), "", err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	if flagBaseURL != "" {
		cfg.Service.BaseURL = flagBaseURL
	}
	if flagModel != "" {
		cfg.Service.DefaultModel = flagModel
	}
	return cfg, path, cfg.Validate()
}

// newLogger opens the file logger configured in cfg.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	path := cfg.Log.Path
	if path == "" {
		var err error
		path, err = cfg.LogPath()
		if err != nil {
			return nil, err
		}
	}
	return logging.New(path, cfg.Log.Level)
}

// newClient builds the service client from cfg.
func newClient(cfg config.Config, logger *zap.Logger) *api.Client {
	clientCfg := api.DefaultConfig()
	clientCfg.BaseURL = cfg.Service.BaseURL
	clientCfg.DefaultModel = cfg.Service.DefaultModel
	if cfg.Service.TimeoutSecs > 0 {
		clientCfg.Timeout = time.Duration(cfg.Service.TimeoutSecs) * time.Second
	}
	clientCfg.Logger = logger
	return api.NewClientWithConfig(clientCfg)
}
