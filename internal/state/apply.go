// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state implements the chat state machine.
package state

import (
	"time"

	"github.com/relaychat/relay-tui/internal/model"
)

// =============================================================================
// TRANSITION FUNCTION
// =============================================================================

// Apply returns the state after applying one action. It is pure: no I/O,
// no clock (timestamps arrive on the action), and the input state is never
// mutated.
func Apply(s ChatState, action Action) ChatState {
	next := s.Clone()

	switch a := action.(type) {
	case SetLoading:
		next.IsLoading = a.Loading

	case SetStreaming:
		next.IsStreaming = a.Streaming

	case SetError:
		next.Err = a.Message

	case SetSessions:
		next.Sessions = make([]model.SessionSummary, len(a.Sessions))
		copy(next.Sessions, a.Sessions)

	case AddSession:
		next.Sessions = append([]model.SessionSummary{a.Summary}, next.Sessions...)

	case DeleteSession:
		kept := next.Sessions[:0]
		for _, sum := range next.Sessions {
			if sum.ID != a.ID {
				kept = append(kept, sum)
			}
		}
		next.Sessions = kept
		if next.CurrentSession != nil && next.CurrentSession.ID == a.ID {
			next.CurrentSession = nil
		}
		if next.CurrentSessionID == a.ID {
			next.CurrentSessionID = ""
		}

	case SetCurrentSession:
		next.CurrentSession = a.Session.Clone()

	case SetCurrentSessionID:
		next.CurrentSessionID = a.ID

	case AddMessage:
		if next.CurrentSession == nil {
			return next
		}
		next.CurrentSession.Messages = append(next.CurrentSession.Messages, a.Message.Clone())

	case UpdateStreamingMessage:
		next = applyStreamingUpdate(next, a)

	case SetStreamingMessageID:
		next.StreamingMessageID = a.ID

	case ToggleHistory:
		if a.Open != nil {
			next.HistoryOpen = *a.Open
		} else {
			next.HistoryOpen = !next.HistoryOpen
		}
	}

	return next
}

// applyStreamingUpdate reconciles one streamed fragment with the current
// session.
//
// The rule is deliberately narrow: only the LAST message of the sequence is
// inspected. If its ID matches the fragment's ID, this is a continuation
// and the fragment is appended to its content (the service sends
// incremental fragments, never cumulative snapshots). Any other situation,
// including an ID that appeared earlier in the session, starts a new
// assistant message. A global ID lookup would misfire when a fresh session
// transiently reuses IDs during optimistic insertion.
func applyStreamingUpdate(s ChatState, a UpdateStreamingMessage) ChatState {
	if s.CurrentSession == nil {
		return s
	}

	last := s.CurrentSession.LastMessage()
	if last != nil && last.ID == a.ID {
		last.Content += a.Content
		return s
	}

	now := a.Now
	if now.IsZero() {
		now = time.Now()
	}
	msg := model.NewAssistantMessage(a.ID, a.Content, now)
	s.CurrentSession.Messages = append(s.CurrentSession.Messages, msg)
	return s
}
