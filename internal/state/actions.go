// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state implements the chat state machine.
package state

import (
	"time"

	"github.com/relaychat/relay-tui/internal/model"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action is one discrete state transition input. Actions carry data only;
// all behavior lives in Apply.
type Action interface {
	isAction()
}

// SetLoading sets the loading flag.
type SetLoading struct {
	Loading bool
}

// SetStreaming sets the streaming flag.
type SetStreaming struct {
	Streaming bool
}

// SetError sets the user-facing error message; empty clears it.
type SetError struct {
	Message string
}

// SetSessions replaces the summary list.
type SetSessions struct {
	Sessions []model.SessionSummary
}

// AddSession prepends a summary to the list (optimistic insertion on
// session creation).
type AddSession struct {
	Summary model.SessionSummary
}

// DeleteSession removes a summary by ID. If the deleted session was
// current, the current session and current session ID are cleared too.
type DeleteSession struct {
	ID string
}

// SetCurrentSession replaces the full current session; nil clears it.
type SetCurrentSession struct {
	Session *model.Session
}

// SetCurrentSessionID replaces the current session ID; empty clears it.
type SetCurrentSessionID struct {
	ID string
}

// AddMessage appends a message to the current session. No-op when no
// current session is loaded.
type AddMessage struct {
	Message *model.ChatMessage
}

// UpdateStreamingMessage applies one streamed fragment. See Apply for the
// continuation-versus-new-message rule.
type UpdateStreamingMessage struct {
	ID         string
	Content    string
	IsComplete bool

	// Now stamps a newly created assistant message. The state machine
	// takes the clock as input to stay pure.
	Now time.Time
}

// SetStreamingMessageID records which message ID is the active streaming
// target; empty clears it.
type SetStreamingMessageID struct {
	ID string
}

// ToggleHistory sets the history panel visibility, or flips it when Open
// is nil.
type ToggleHistory struct {
	Open *bool
}

func (SetLoading) isAction()             {}
func (SetStreaming) isAction()           {}
func (SetError) isAction()               {}
func (SetSessions) isAction()            {}
func (AddSession) isAction()             {}
func (DeleteSession) isAction()          {}
func (SetCurrentSession) isAction()      {}
func (SetCurrentSessionID) isAction()    {}
func (AddMessage) isAction()             {}
func (UpdateStreamingMessage) isAction() {}
func (SetStreamingMessageID) isAction()  {}
func (ToggleHistory) isAction()          {}
