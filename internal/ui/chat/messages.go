// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
//
// This file defines the Bubble Tea message types used by the chat view.
// State changes arrive as StateChangedMsg notifications; the view then
// pulls a fresh snapshot from the store rather than carrying state in the
// message itself.
package chat

import "github.com/relaychat/relay-tui/internal/config"

// =============================================================================
// STATE MESSAGES
// =============================================================================

// StateChangedMsg signals that the store has a new snapshot worth taking.
type StateChangedMsg struct{}

// OpDoneMsg signals that an orchestrator operation returned. All visible
// effects already happened through the store; this exists so commands have
// something to return.
type OpDoneMsg struct{}

// =============================================================================
// CONNECTIVITY MESSAGES
// =============================================================================

// HealthMsg carries the result of a liveness probe.
type HealthMsg struct {
	OK bool
}

// healthTickMsg schedules the next periodic probe.
type healthTickMsg struct{}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a configuration re-loaded by the file
// watcher.
type ConfigReloadedMsg struct {
	Config config.Config
}
