// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the relay TUI:
// the header bar, the session history panel, the status bar, and the
// error box. Components are pure renderers over data the chat model hands
// them; none of them talk to the service or hold chat state.
package components
