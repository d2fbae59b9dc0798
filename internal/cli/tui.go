// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/relaychat/relay-tui/internal/config"
	"github.com/relaychat/relay-tui/internal/orchestrator"
	"github.com/relaychat/relay-tui/internal/state"
	"github.com/relaychat/relay-tui/internal/ui/chat"
	"github.com/relaychat/relay-tui/internal/ui/styles"
)

// =============================================================================
// TUI LAUNCHER
// =============================================================================

// runTUI wires the full stack and runs the Bubble Tea program until exit.
func runTUI() error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync()

	client := newClient(cfg, logger)
	store := state.NewStore()
	orch := orchestrator.New(store, client, logger)

	// Config hot reload is best effort; the TUI runs fine without it.
	var configCh <-chan config.Config
	watcher, err := config.NewWatcher(cfgPath, logger)
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		configCh = watcher.Changes()
		defer watcher.Close()
	}

	m := chat.New(orch, styles.NewTheme(), chat.Options{
		ModelName: cfg.Service.DefaultModel,
		ConfigCh:  configCh,
		History:   cfg.UI.HistoryOpen,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	orch.Shutdown()
	logger.Info("relay exited")
	return nil
}
