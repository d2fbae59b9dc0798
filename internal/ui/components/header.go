// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the relay TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/relaychat/relay-tui/internal/ui/styles"
	"github.com/relaychat/relay-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: app name, current session title, model name.
type Header struct {
	Title        string
	SessionTitle string
	ModelName    string
	Width        int
	theme        *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "relay",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// Render returns the header line.
func (h *Header) Render() string {
	left := h.theme.HeaderTitle.Render(h.Title)
	if h.SessionTitle != "" {
		left += " " + h.theme.HeaderModel.Render(util.TruncateWidth(h.SessionTitle, h.Width/2))
	}

	right := ""
	if h.ModelName != "" {
		right = h.theme.HeaderModel.Render(h.ModelName)
	}

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return h.theme.Header.Width(h.Width).Render(line)
}
