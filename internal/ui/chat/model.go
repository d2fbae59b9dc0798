// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the relay TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/relaychat/relay-tui/internal/config"
	"github.com/relaychat/relay-tui/internal/orchestrator"
	"github.com/relaychat/relay-tui/internal/state"
	"github.com/relaychat/relay-tui/internal/ui/components"
	"github.com/relaychat/relay-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

const historyPanelWidth = 32

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Core
	orch  *orchestrator.Orchestrator
	store *state.Store
	snap  state.ChatState

	// Styling
	theme *styles.Theme

	// Components
	header  *components.Header
	history *components.HistoryPanel
	status  *components.StatusBar
	errBox  *components.ErrorBox

	// Bubbles
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering for assistant messages
	renderer *glamour.TermRenderer

	// Key bindings
	keys KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// Connectivity
	healthOK bool

	// Current model name for the header
	modelName string

	// Config hot reload (nil when not watching)
	configCh <-chan config.Config
}

// Options configures the chat model.
type Options struct {
	ModelName string
	ConfigCh  <-chan config.Config
	History   bool
}

// New creates the chat view over an orchestrator.
func New(orch *orchestrator.Orchestrator, theme *styles.Theme, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	m := Model{
		orch:      orch,
		store:     orch.Store(),
		snap:      orch.Store().Snapshot(),
		theme:     theme,
		header:    components.NewHeader(theme),
		history:   components.NewHistoryPanel(theme),
		status:    components.NewStatusBar(theme),
		errBox:    components.NewErrorBox(theme),
		input:     input,
		spinner:   sp,
		keys:      DefaultKeyMap(),
		modelName: opts.ModelName,
		configCh:  opts.ConfigCh,
	}
	m.header.ModelName = opts.ModelName

	if opts.History {
		open := true
		orch.ToggleHistory(&open)
	}

	return m
}

// Init starts the subscription loops and the initial data load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForChange(m.store),
		checkHealth(m.orch.Client()),
		loadSessionsCmd(m.orch),
		watchConfig(m.configCh),
	)
}

// transcriptWidth returns the width available for the message area.
func (m Model) transcriptWidth() int {
	w := m.width
	if m.snap.HistoryOpen {
		w -= historyPanelWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// newRenderer builds the glamour renderer for the current width.
func (m *Model) newRenderer() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.transcriptWidth()-4),
	)
	if err != nil {
		// Plain text fallback is handled at render time.
		m.renderer = nil
		return
	}
	m.renderer = r
}
