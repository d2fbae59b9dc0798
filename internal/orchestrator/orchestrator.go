// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator is the use-case layer of the chat client.
package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/relaychat/relay-tui/internal/api"
	"github.com/relaychat/relay-tui/internal/model"
	"github.com/relaychat/relay-tui/internal/state"
)

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator sequences transport calls and dispatches the resulting
// actions into the state store. Operations are safe to invoke from any
// goroutine; the store serializes all state mutation.
type Orchestrator struct {
	store  *state.Store
	client *api.Client
	logger *zap.Logger

	// In-flight reply stream, tagged with the session it was opened for.
	// Session switches and deletes cancel it through this handle.
	mu            sync.Mutex
	activeStream  *api.Stream
	activeSession string
}

// New creates an orchestrator over the given store and client.
func New(store *state.Store, client *api.Client, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Store returns the state store driving the presentation layer.
func (o *Orchestrator) Store() *state.Store {
	return o.store
}

// Client returns the underlying service client (used for the liveness
// probe, which bypasses chat state entirely).
func (o *Orchestrator) Client() *api.Client {
	return o.client
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// LoadSessions refreshes the summary list. On failure the previous list is
// left intact and the error slot is set.
func (o *Orchestrator) LoadSessions(ctx context.Context) {
	o.store.Dispatch(state.SetLoading{Loading: true})

	sessions, err := o.client.ListSessions(ctx)
	if err != nil {
		o.logger.Warn("loading sessions failed", zap.Error(err))
		o.store.Dispatch(state.SetError{Message: FormatError(err)})
		o.store.Dispatch(state.SetLoading{})
		return
	}

	o.store.Dispatch(state.SetSessions{Sessions: sessions})
	o.store.Dispatch(state.SetLoading{})
}

// CreateNewSession creates a session, optimistically inserts its summary,
// makes it current, and loads the full record. The service does not return
// a summary on create, so the local one starts at zero messages and is
// replaced on the next list refresh.
//
// This is the one operation that returns its error in addition to setting
// the error slot, so callers performing implicit creation can react.
func (o *Orchestrator) CreateNewSession(ctx context.Context, title string) (string, error) {
	o.store.Dispatch(state.SetError{})
	o.store.Dispatch(state.SetLoading{Loading: true})

	resp, err := o.client.CreateSession(ctx, title)
	if err != nil {
		o.logger.Warn("creating session failed", zap.Error(err))
		o.store.Dispatch(state.SetError{Message: FormatError(err)})
		o.store.Dispatch(state.SetLoading{})
		return "", err
	}

	o.store.Dispatch(state.AddSession{
		Summary: model.NewSessionSummary(resp.SessionID, title, resp.CreatedAt),
	})
	o.store.Dispatch(state.SetCurrentSessionID{ID: resp.SessionID})
	o.cancelStreamNotFor(resp.SessionID)

	o.LoadSession(ctx, resp.SessionID)
	return resp.SessionID, nil
}

// LoadSession fetches a full session and installs it as current. A stream
// still running for a different session is cancelled: its session is no
// longer current, so none of its remaining events may apply.
func (o *Orchestrator) LoadSession(ctx context.Context, id string) {
	o.cancelStreamNotFor(id)

	o.store.Dispatch(state.SetError{})
	o.store.Dispatch(state.SetLoading{Loading: true})

	session, err := o.client.GetSession(ctx, id)
	if err != nil {
		o.logger.Warn("loading session failed", zap.String("session", id), zap.Error(err))
		o.store.Dispatch(state.SetError{Message: FormatError(err)})
		o.store.Dispatch(state.SetLoading{})
		return
	}

	o.store.Dispatch(state.SetCurrentSession{Session: session})
	o.store.Dispatch(state.SetCurrentSessionID{ID: id})
	o.store.Dispatch(state.SetLoading{})
}

// DeleteSession removes a session on the service and locally. A second
// delete of an already-deleted ID is success, not an error. On any other
// failure local state stays untouched.
func (o *Orchestrator) DeleteSession(ctx context.Context, id string) {
	o.cancelStreamFor(id)

	if err := o.client.DeleteSession(ctx, id); err != nil && !api.IsNotFound(err) {
		o.logger.Warn("deleting session failed", zap.String("session", id), zap.Error(err))
		o.store.Dispatch(state.SetError{Message: FormatError(err)})
		return
	}

	o.store.Dispatch(state.DeleteSession{ID: id})
}

// =============================================================================
// SEND MESSAGE
// =============================================================================

// SendMessage appends an optimistic user message and streams the assistant
// reply into the current session. Blank content is a no-op. Without a
// current session one is created first; if that fails the operation aborts
// silently (the error slot is already set).
//
// The optimistic user message is not rolled back when the stream fails;
// the error slot is set instead. See DESIGN.md for the rationale.
func (o *Orchestrator) SendMessage(ctx context.Context, content, modelName string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	sessionID := o.store.CurrentSessionID()
	if sessionID == "" {
		id, err := o.CreateNewSession(ctx, "")
		if err != nil {
			return
		}
		sessionID = id
	}

	o.store.Dispatch(state.AddMessage{Message: model.NewUserMessage(content)})
	o.store.Dispatch(state.SetStreaming{Streaming: true})
	o.store.Dispatch(state.SetError{})

	stream, err := o.client.SendMessage(ctx, sessionID, api.SendMessageRequest{
		Content: content,
		Model:   modelName,
	})
	if err != nil {
		o.logger.Warn("sending message failed", zap.String("session", sessionID), zap.Error(err))
		o.finishStreaming()
		o.store.Dispatch(state.SetError{Message: FormatError(err)})
		return
	}

	o.setActiveStream(stream, sessionID)
	defer o.clearActiveStream(stream)

	o.consumeStream(ctx, stream, sessionID)
}

// consumeStream applies reply events in receipt order until terminal.
// Every chunk is checked against the current session at the moment it is
// received: when the user has switched away, the remaining events belong
// to a stale stream and are dropped wholesale.
func (o *Orchestrator) consumeStream(ctx context.Context, stream *api.Stream, sessionID string) {
	streamingIDSet := false

	for ev := range stream.Events() {
		switch {
		case ev.Chunk != nil:
			if o.store.CurrentSessionID() != sessionID {
				o.logger.Debug("dropping stale stream",
					zap.String("session", sessionID),
					zap.String("message", ev.Chunk.MessageID))
				stream.Close()
				for range stream.Events() {
					// Drain without applying.
				}
				o.finishStreaming()
				return
			}

			o.store.Dispatch(state.UpdateStreamingMessage{
				ID:         ev.Chunk.MessageID,
				Content:    ev.Chunk.Content,
				IsComplete: ev.Chunk.IsComplete,
				Now:        time.Now(),
			})
			if !streamingIDSet {
				// Recorded once per reply, on the first chunk actually
				// observed.
				o.store.Dispatch(state.SetStreamingMessageID{ID: ev.Chunk.MessageID})
				streamingIDSet = true
			}

		case ev.Err != nil:
			o.logger.Warn("reply stream failed", zap.String("session", sessionID), zap.Error(ev.Err))
			o.finishStreaming()
			o.store.Dispatch(state.SetError{Message: FormatError(ev.Err)})
			return

		case ev.Done:
			o.finishStreaming()
			// Refresh summaries so message counts catch up.
			o.LoadSessions(ctx)
			return
		}
	}

	// Channel closed without a terminal event: the stream was cancelled
	// out from under us (session switch or shutdown). Clear the flags and
	// say nothing.
	o.finishStreaming()
}

// finishStreaming clears the streaming flag and target ID.
func (o *Orchestrator) finishStreaming() {
	o.store.Dispatch(state.SetStreaming{})
	o.store.Dispatch(state.SetStreamingMessageID{})
}

// =============================================================================
// UI PASSTHROUGHS
// =============================================================================

// ToggleHistory sets or flips the history panel visibility.
func (o *Orchestrator) ToggleHistory(open *bool) {
	o.store.Dispatch(state.ToggleHistory{Open: open})
}

// ClearError clears the error slot.
func (o *Orchestrator) ClearError() {
	o.store.Dispatch(state.SetError{})
}

// =============================================================================
// STREAM BOOKKEEPING
// =============================================================================

func (o *Orchestrator) setActiveStream(s *api.Stream, sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.activeStream = s
	o.activeSession = sessionID
}

func (o *Orchestrator) clearActiveStream(s *api.Stream) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStream == s {
		o.activeStream = nil
		o.activeSession = ""
	}
}

// cancelStreamNotFor cancels the active stream unless it belongs to the
// given session.
func (o *Orchestrator) cancelStreamNotFor(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStream != nil && o.activeSession != sessionID {
		o.activeStream.Close()
	}
}

// cancelStreamFor cancels the active stream if it belongs to the given
// session.
func (o *Orchestrator) cancelStreamFor(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStream != nil && o.activeSession == sessionID {
		o.activeStream.Close()
	}
}

// Shutdown cancels any in-flight stream. Called on application exit.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.activeStream != nil {
		o.activeStream.Close()
	}
}
