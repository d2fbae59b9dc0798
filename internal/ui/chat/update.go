// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/relaychat/relay-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one Bubble Tea message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StateChangedMsg:
		return m.handleStateChange()

	case OpDoneMsg:
		return m, nil

	case HealthMsg:
		m.healthOK = msg.OK
		m.status.Connected = msg.OK
		return m, healthTick()

	case healthTickMsg:
		return m, checkHealth(m.orch.Client())

	case ConfigReloadedMsg:
		m.modelName = msg.Config.Service.DefaultModel
		m.header.ModelName = m.modelName
		m.orch.Client().SetDefaultModel(m.modelName)
		return m, watchConfig(m.configCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateChildren(msg)
}

// handleResize recomputes layout for new terminal dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Header, status bar, error box, and input each take one or two rows.
	contentHeight := m.height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.transcriptWidth(), contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.transcriptWidth()
		m.viewport.Height = contentHeight
	}

	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.errBox.SetWidth(m.width)
	m.history.SetSize(historyPanelWidth, contentHeight)
	m.input.Width = m.width - 6

	m.newRenderer()
	m.refreshTranscript()
	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.orch.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		if m.snap.Err != "" {
			m.orch.ClearError()
			return m, nil
		}
		if m.snap.HistoryOpen {
			closed := false
			m.orch.ToggleHistory(&closed)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleHistory):
		m.orch.ToggleHistory(nil)
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		return m, newSessionCmd(m.orch)

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.snap.HistoryOpen {
		if handled, next, cmd := m.handleHistoryKey(msg); handled {
			return next, cmd
		}
	}

	if key.Matches(msg, m.keys.Send) {
		content := m.input.Value()
		if strings.TrimSpace(content) == "" {
			return m, nil
		}
		if m.snap.IsStreaming {
			// One reply at a time.
			return m, nil
		}
		m.input.Reset()
		return m, sendMessageCmd(m.orch, content, m.modelName)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHistoryKey handles navigation inside the open history panel.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.HistoryUp):
		m.history.MoveUp()
		return true, m, nil

	case key.Matches(msg, m.keys.HistoryDown):
		m.history.MoveDown()
		return true, m, nil

	case key.Matches(msg, m.keys.Send):
		if sel := m.history.SelectedSession(); sel != nil {
			return true, m, loadSessionCmd(m.orch, sel.ID)
		}
		return true, m, nil

	case key.Matches(msg, m.keys.DeleteSession):
		if sel := m.history.SelectedSession(); sel != nil {
			return true, m, deleteSessionCmd(m.orch, sel.ID)
		}
		return true, m, nil
	}

	return false, m, nil
}

// handleStateChange pulls a fresh snapshot and re-derives the view data.
func (m Model) handleStateChange() (tea.Model, tea.Cmd) {
	wasAtBottom := m.viewport.AtBottom()

	m.snap = m.store.Snapshot()

	m.history.SetSessions(m.snap.Sessions)
	m.history.CurrentID = m.snap.CurrentSessionID
	m.errBox.Message = m.snap.Err

	if m.snap.CurrentSession != nil {
		m.header.SessionTitle = m.snap.CurrentSession.Title
	} else {
		m.header.SessionTitle = ""
	}

	switch {
	case m.snap.IsStreaming:
		m.status.Status = components.StatusStreaming
	case m.snap.IsLoading:
		m.status.Status = components.StatusLoading
	default:
		m.status.Status = components.StatusReady
	}

	if m.ready {
		m.viewport.Width = m.transcriptWidth()
		m.newRenderer()
	}
	m.refreshTranscript()
	if wasAtBottom || m.snap.IsStreaming {
		m.viewport.GotoBottom()
	}

	return m, waitForChange(m.store)
}

// updateChildren forwards unhandled messages to the child bubbles.
func (m Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
