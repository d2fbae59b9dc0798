// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the relay TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/relaychat/relay-tui/internal/model"
	"github.com/relaychat/relay-tui/internal/ui/styles"
	"github.com/relaychat/relay-tui/internal/util"
)

// =============================================================================
// HISTORY PANEL COMPONENT
// =============================================================================

// HistoryPanel renders the session list sidebar. Selection is tracked by
// index into the summaries the chat model passes in.
type HistoryPanel struct {
	Sessions  []model.SessionSummary
	Selected  int
	CurrentID string
	Width     int
	Height    int
	theme     *styles.Theme
}

// NewHistoryPanel creates a history panel.
func NewHistoryPanel(theme *styles.Theme) *HistoryPanel {
	return &HistoryPanel{Width: 32, Height: 20, theme: theme}
}

// SetSize updates the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// MoveUp moves the selection up one entry.
func (p *HistoryPanel) MoveUp() {
	if p.Selected > 0 {
		p.Selected--
	}
}

// MoveDown moves the selection down one entry.
func (p *HistoryPanel) MoveDown() {
	if p.Selected < len(p.Sessions)-1 {
		p.Selected++
	}
}

// SelectedSession returns the summary under the cursor, or nil.
func (p *HistoryPanel) SelectedSession() *model.SessionSummary {
	if p.Selected < 0 || p.Selected >= len(p.Sessions) {
		return nil
	}
	return &p.Sessions[p.Selected]
}

// SetSessions replaces the list, clamping the selection.
func (p *HistoryPanel) SetSessions(sessions []model.SessionSummary) {
	p.Sessions = sessions
	if p.Selected >= len(sessions) {
		p.Selected = len(sessions) - 1
	}
	if p.Selected < 0 {
		p.Selected = 0
	}
}

// Render returns the panel content.
func (p *HistoryPanel) Render() string {
	var b strings.Builder
	b.WriteString(p.theme.HistoryTitle.Render("History"))
	b.WriteString("\n\n")

	if len(p.Sessions) == 0 {
		b.WriteString(p.theme.HistoryMeta.Render("No sessions yet."))
		return p.theme.HistoryPanel.Width(p.Width).Height(p.Height).Render(b.String())
	}

	now := time.Now()
	innerWidth := p.Width - 3

	// Two rows per entry plus the title block.
	visible := (p.Height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if p.Selected >= visible {
		start = p.Selected - visible + 1
	}

	for i := start; i < len(p.Sessions) && i < start+visible; i++ {
		sum := p.Sessions[i]

		marker := "  "
		style := p.theme.HistoryItem
		if i == p.Selected {
			marker = "> "
			style = p.theme.HistorySelected
		}
		title := util.TruncateWidth(sum.DisplayTitle(), innerWidth-2)
		if sum.ID == p.CurrentID {
			title = title + " *"
		}
		b.WriteString(style.Render(marker + title))
		b.WriteString("\n")

		meta := fmt.Sprintf("  %d msgs, %s", sum.MessageCount, util.RelativeTime(sum.LastMessageAt, now))
		b.WriteString(p.theme.HistoryMeta.Render(util.TruncateWidth(meta, innerWidth)))
		b.WriteString("\n")
	}

	return p.theme.HistoryPanel.Width(p.Width).Height(p.Height).Render(b.String())
}
