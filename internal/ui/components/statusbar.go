// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the relay TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relaychat/relay-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusStreaming
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusStreaming:
		return "Streaming..."
	default:
		return "Unknown"
	}
}

// StatusBar is the bottom bar: connection state, activity, shortcuts.
type StatusBar struct {
	Status    Status
	Connected bool
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// Render returns the status bar line.
func (b *StatusBar) Render() string {
	conn := b.theme.StatusBad.Render("offline")
	if b.Connected {
		conn = b.theme.StatusOK.Render("online")
	}

	activity := b.Status.String()
	if b.Status == StatusStreaming {
		activity = b.theme.StreamingNote.Render(activity)
	}

	shortcuts := []string{
		b.theme.ShortcutKey.Render("^H") + b.theme.ShortcutDesc.Render(" history"),
		b.theme.ShortcutKey.Render("^N") + b.theme.ShortcutDesc.Render(" new"),
		b.theme.ShortcutKey.Render("^C") + b.theme.ShortcutDesc.Render(" quit"),
	}

	left := conn + "  " + activity
	right := strings.Join(shortcuts, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return b.theme.StatusBar.Width(b.Width).Render(left + strings.Repeat(" ", gap) + right)
}
