// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaychat/relay-tui/internal/model"
	"github.com/relaychat/relay-tui/internal/ui/styles"
)

func summaries(ids ...string) []model.SessionSummary {
	out := make([]model.SessionSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.NewSessionSummary(id, "chat "+id, time.Now()))
	}
	return out
}

func TestHistoryPanelNavigation(t *testing.T) {
	p := NewHistoryPanel(styles.NewTheme())
	p.SetSessions(summaries("a", "b", "c"))

	require.NotNil(t, p.SelectedSession())
	assert.Equal(t, "a", p.SelectedSession().ID)

	p.MoveUp()
	assert.Equal(t, "a", p.SelectedSession().ID, "selection stops at the top")

	p.MoveDown()
	p.MoveDown()
	assert.Equal(t, "c", p.SelectedSession().ID)

	p.MoveDown()
	assert.Equal(t, "c", p.SelectedSession().ID, "selection stops at the bottom")
}

func TestHistoryPanelClampsSelectionOnShrink(t *testing.T) {
	p := NewHistoryPanel(styles.NewTheme())
	p.SetSessions(summaries("a", "b", "c"))
	p.MoveDown()
	p.MoveDown()

	p.SetSessions(summaries("a"))
	require.NotNil(t, p.SelectedSession())
	assert.Equal(t, "a", p.SelectedSession().ID)

	p.SetSessions(nil)
	assert.Nil(t, p.SelectedSession())
}

func TestHistoryPanelRenderMarksCurrent(t *testing.T) {
	p := NewHistoryPanel(styles.NewTheme())
	p.SetSessions(summaries("a", "b"))
	p.CurrentID = "b"
	p.SetSize(32, 20)

	out := p.Render()
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "chat b *")
}

func TestErrorBoxEmptyWhenNoMessage(t *testing.T) {
	e := NewErrorBox(styles.NewTheme())
	assert.Empty(t, e.Render())

	e.Message = "something broke"
	out := e.Render()
	assert.Contains(t, out, "something broke")
	assert.Contains(t, out, "esc to dismiss")
}

func TestStatusBarShowsConnectivity(t *testing.T) {
	b := NewStatusBar(styles.NewTheme())
	b.SetWidth(100)

	assert.Contains(t, b.Render(), "offline")

	b.Connected = true
	b.Status = StatusStreaming
	out := b.Render()
	assert.Contains(t, out, "online")
	assert.Contains(t, out, "Streaming...")
}

func TestHeaderRender(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SessionTitle = "weekly notes"
	h.ModelName = "relay-small"

	out := h.Render()
	assert.Contains(t, out, "relay")
	assert.Contains(t, out, "weekly notes")
	assert.Contains(t, out, "relay-small")
	assert.False(t, strings.Contains(out, "\n"), "header is a single line")
}
