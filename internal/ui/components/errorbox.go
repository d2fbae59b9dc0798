// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the relay TUI.
package components

import (
	"github.com/relaychat/relay-tui/internal/ui/styles"
	"github.com/relaychat/relay-tui/internal/util"
)

// =============================================================================
// ERROR BOX COMPONENT
// =============================================================================

// ErrorBox renders the error slot of the chat state, when set.
type ErrorBox struct {
	Message string
	Width   int
	theme   *styles.Theme
}

// NewErrorBox creates an error box.
func NewErrorBox(theme *styles.Theme) *ErrorBox {
	return &ErrorBox{Width: 80, theme: theme}
}

// SetWidth updates the box width.
func (e *ErrorBox) SetWidth(width int) {
	e.Width = width
}

// Render returns the error box, or an empty string when there is nothing
// to show.
func (e *ErrorBox) Render() string {
	if e.Message == "" {
		return ""
	}
	text := util.TruncateWidth("! "+e.Message+"  (esc to dismiss)", e.Width-4)
	return e.theme.ErrorBox.Width(e.Width - 2).Render(text)
}
