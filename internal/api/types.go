// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the remote
// chat service.
package api

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateSessionRequest is the body for POST /api/chat/sessions.
type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// SendMessageRequest is the body for POST /api/chat/sessions/{id}/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CreateSessionResponse is the response from POST /api/chat/sessions.
type CreateSessionResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// errorBody is the JSON error envelope the service attaches to non-2xx
// responses. Both fields are optional.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one incremental fragment of an assistant reply. All chunks
// belonging to one reply share the same MessageID, and Content holds only
// the new fragment, never a cumulative snapshot.
type StreamChunk struct {
	MessageID  string
	Content    string
	IsComplete bool
	Timestamp  time.Time
}

// StreamEvent is one event from a reply stream. Exactly one of the three
// shapes is populated: a data chunk, a terminal completion, or a terminal
// error. After a terminal event the stream delivers nothing further.
type StreamEvent struct {
	Chunk *StreamChunk
	Done  bool
	Err   error
}
