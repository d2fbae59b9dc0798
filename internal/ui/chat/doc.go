// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
//
// The Bubble Tea model here is a pure consumer of chat state: key events
// invoke orchestrator operations as commands, and a waitForChange command
// turns store notifications into fresh snapshots. The view renders only
// from the latest snapshot; it never reaches into canonical state.
package chat
