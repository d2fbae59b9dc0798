// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state implements the chat state machine.
package state

import (
	"github.com/relaychat/relay-tui/internal/model"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// ChatState is the aggregate owned by the state machine. Exactly one
// instance exists per chat context; the presentation layer only ever sees
// snapshots of it.
type ChatState struct {
	// CurrentSessionID is the ID of the current session, empty when no
	// session is active. It can be set ahead of CurrentSession while the
	// full record is still loading.
	CurrentSessionID string

	// CurrentSession is the full current session with messages, nil when
	// none is loaded.
	CurrentSession *model.Session

	// Sessions is the summary list for history display, server order
	// (most recent first).
	Sessions []model.SessionSummary

	// IsLoading is true while a request/response operation is in flight.
	IsLoading bool

	// IsStreaming is true while an assistant reply is streaming in.
	IsStreaming bool

	// StreamingMessageID is the ID of the message currently receiving
	// fragments, empty when none.
	StreamingMessageID string

	// Err holds the last user-facing error message, empty when none.
	Err string

	// HistoryOpen is the visibility flag of the history panel.
	HistoryOpen bool
}

// NewChatState returns the initial state: no sessions, nothing loading,
// history closed.
func NewChatState() ChatState {
	return ChatState{}
}

// Clone returns a deep copy of the state. Message and summary slices are
// copied so holders of a snapshot can never mutate canonical state.
func (s ChatState) Clone() ChatState {
	c := s
	c.CurrentSession = s.CurrentSession.Clone()
	if s.Sessions != nil {
		c.Sessions = make([]model.SessionSummary, len(s.Sessions))
		copy(c.Sessions, s.Sessions)
	}
	return c
}
