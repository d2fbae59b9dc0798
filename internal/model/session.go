// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import "time"

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session holds one complete conversation thread with metadata.
type Session struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Title     string         `json:"title,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Messages  []*ChatMessage `json:"messages"`
}

// LastMessage returns the most recent message, or nil if empty.
func (s *Session) LastMessage() *ChatMessage {
	if s == nil || len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// Clone returns a deep copy of the session. State snapshots hand sessions
// to the presentation layer, which must never share message pointers with
// the canonical state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Messages = make([]*ChatMessage, len(s.Messages))
	for i, m := range s.Messages {
		c.Messages[i] = m.Clone()
	}
	return &c
}

// =============================================================================
// SESSION SUMMARY
// =============================================================================

// SessionSummary is the list-display projection of a Session. Summaries are
// refreshed by re-fetching after mutating operations rather than patched
// incrementally, except for the speculative insertion on session creation.
type SessionSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	MessageCount  int       `json:"messageCount"`
}

// NewSessionSummary builds the optimistic summary for a freshly created
// session: zero messages, last activity equal to creation time.
func NewSessionSummary(id, title string, createdAt time.Time) SessionSummary {
	return SessionSummary{
		ID:            id,
		Title:         title,
		CreatedAt:     createdAt,
		LastMessageAt: createdAt,
		MessageCount:  0,
	}
}

// DisplayTitle returns the title, or a fallback derived from creation time
// for untitled sessions.
func (s SessionSummary) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return "Chat " + s.CreatedAt.Format("Jan 2 15:04")
}
