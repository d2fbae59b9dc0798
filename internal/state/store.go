// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state implements the chat state machine.
package state

import "sync"

// =============================================================================
// STORE
// =============================================================================

// Store owns the canonical ChatState. All mutation goes through Dispatch,
// which applies one action at a time; there is never a second writer.
type Store struct {
	mu      sync.Mutex
	state   ChatState
	changes chan struct{}
}

// NewStore creates a store holding the initial chat state.
func NewStore() *Store {
	return &Store{
		state: NewChatState(),
		// Capacity one: notifications coalesce, observers re-read the
		// snapshot rather than counting signals.
		changes: make(chan struct{}, 1),
	}
}

// Dispatch applies an action to the canonical state and notifies
// observers. Safe for concurrent use from any goroutine.
func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	st.state = Apply(st.state, a)
	st.mu.Unlock()

	select {
	case st.changes <- struct{}{}:
	default:
	}
}

// Snapshot returns a deep copy of the current state.
func (st *Store) Snapshot() ChatState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}

// Changes returns the notification channel. A receive means at least one
// dispatch happened since the last snapshot was taken.
func (st *Store) Changes() <-chan struct{} {
	return st.changes
}

// CurrentSessionID returns the current session ID without copying the
// whole state. The streaming consume loop calls this per event.
func (st *Store) CurrentSessionID() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.CurrentSessionID
}
