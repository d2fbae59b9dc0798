// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaychat/relay-tui/internal/model"
)

func TestStoreDispatchAndSnapshot(t *testing.T) {
	st := NewStore()

	st.Dispatch(SetCurrentSessionID{ID: "s1"})
	st.Dispatch(SetLoading{Loading: true})

	snap := st.Snapshot()
	assert.Equal(t, "s1", snap.CurrentSessionID)
	assert.True(t, snap.IsLoading)
	assert.Equal(t, "s1", st.CurrentSessionID())
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetCurrentSession{Session: &model.Session{
		ID:       "s1",
		Messages: []*model.ChatMessage{model.NewUserMessage("hi")},
	}})

	snap := st.Snapshot()
	snap.CurrentSession.Messages[0].Content = "mutated"

	fresh := st.Snapshot()
	assert.Equal(t, "hi", fresh.CurrentSession.Messages[0].Content,
		"mutating a snapshot must not affect the store")
}

func TestStoreChangeNotificationCoalesces(t *testing.T) {
	st := NewStore()

	st.Dispatch(SetLoading{Loading: true})
	st.Dispatch(SetStreaming{Streaming: true})
	st.Dispatch(SetError{Message: "x"})

	// Many dispatches, at least one pending signal.
	select {
	case <-st.Changes():
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	// All three were coalesced; the snapshot carries everything.
	snap := st.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.True(t, snap.IsStreaming)
	assert.Equal(t, "x", snap.Err)
}

func TestStoreDispatchNeverBlocks(t *testing.T) {
	st := NewStore()

	done := make(chan struct{})
	go func() {
		// Nobody is draining Changes; every dispatch must still return.
		for i := 0; i < 100; i++ {
			st.Dispatch(SetLoading{Loading: i%2 == 0})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch blocked on a full notification channel")
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	st := NewStore()
	st.Dispatch(SetCurrentSession{Session: &model.Session{ID: "s1"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				st.Dispatch(AddMessage{Message: model.NewUserMessage("msg")})
			}
		}()
	}
	wg.Wait()

	snap := st.Snapshot()
	require.NotNil(t, snap.CurrentSession)
	assert.Len(t, snap.CurrentSession.Messages, 8*50,
		"every dispatched action applies exactly once")
}
