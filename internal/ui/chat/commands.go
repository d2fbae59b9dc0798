// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/relaychat/relay-tui/internal/api"
	"github.com/relaychat/relay-tui/internal/config"
	"github.com/relaychat/relay-tui/internal/orchestrator"
	"github.com/relaychat/relay-tui/internal/state"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// waitForChange blocks until the store reports a change.
func waitForChange(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		<-store.Changes()
		return StateChangedMsg{}
	}
}

// checkHealth probes the service once.
func checkHealth(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		return HealthMsg{OK: client.CheckHealth(context.Background())}
	}
}

// healthTick schedules the next periodic probe.
func healthTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

// watchConfig waits for the next configuration reload. Returns nil when
// no watcher is attached.
func watchConfig(ch <-chan config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// =============================================================================
// ORCHESTRATOR OPERATIONS
// =============================================================================

// Operations run on their own goroutine via tea.Cmd; everything the view
// needs back arrives through store notifications.

func loadSessionsCmd(orch *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		orch.LoadSessions(context.Background())
		return OpDoneMsg{}
	}
}

func loadSessionCmd(orch *orchestrator.Orchestrator, id string) tea.Cmd {
	return func() tea.Msg {
		orch.LoadSession(context.Background(), id)
		return OpDoneMsg{}
	}
}

func newSessionCmd(orch *orchestrator.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		// Error handling happens inside; the returned error is only for
		// callers that need to chain on creation.
		_, _ = orch.CreateNewSession(context.Background(), "")
		return OpDoneMsg{}
	}
}

func deleteSessionCmd(orch *orchestrator.Orchestrator, id string) tea.Cmd {
	return func() tea.Msg {
		orch.DeleteSession(context.Background(), id)
		return OpDoneMsg{}
	}
}

func sendMessageCmd(orch *orchestrator.Orchestrator, content, model string) tea.Cmd {
	return func() tea.Msg {
		orch.SendMessage(context.Background(), content, model)
		return OpDoneMsg{}
	}
}
