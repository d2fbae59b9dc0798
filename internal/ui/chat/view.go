// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relaychat/relay-tui/internal/model"
	"github.com/relaychat/relay-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting relay..."
	}

	var sections []string
	sections = append(sections, m.header.Render())

	if errBox := m.errBox.Render(); errBox != "" {
		sections = append(sections, errBox)
	}

	content := m.viewport.View()
	if m.snap.HistoryOpen {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.history.Render(), content)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderInput())
	sections = append(sections, m.status.Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderInput returns the input row, with a spinner while busy.
func (m Model) renderInput() string {
	line := m.input.View()
	if m.snap.IsLoading || m.snap.IsStreaming {
		line = m.spinner.View() + " " + line
	}
	return m.theme.InputContainer.Width(m.width).Render(line)
}

// refreshTranscript re-renders the message list into the viewport.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

// renderMessages formats the current session's transcript.
func (m Model) renderMessages() string {
	if m.snap.CurrentSession == nil || len(m.snap.CurrentSession.Messages) == 0 {
		return m.theme.Timestamp.Render("\n  No messages yet. Type below to start the conversation.")
	}

	var b strings.Builder
	for _, msg := range m.snap.CurrentSession.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage formats a single message: label line, then body.
func (m Model) renderMessage(msg *model.ChatMessage) string {
	labelStyle := m.theme.AssistantLabel
	bodyStyle := m.theme.AssistantBody
	if msg.Role == model.RoleUser {
		labelStyle = m.theme.UserLabel
		bodyStyle = m.theme.UserBody
	}

	label := labelStyle.Render(msg.Role.DisplayName())
	if !msg.Timestamp.IsZero() {
		label += "  " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	body := msg.Content
	if msg.Role == model.RoleAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(body); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	} else {
		body = util.WrapText(body, m.transcriptWidth()-4)
	}

	if m.snap.StreamingMessageID != "" && msg.ID == m.snap.StreamingMessageID {
		body += " " + m.theme.StreamingNote.Render("▍")
	}

	return label + "\n" + bodyStyle.Width(m.transcriptWidth()-2).Render(body) + "\n"
}
