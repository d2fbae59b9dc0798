// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastMessage(t *testing.T) {
	var nilSession *Session
	assert.Nil(t, nilSession.LastMessage())

	s := &Session{ID: "s1"}
	assert.Nil(t, s.LastMessage())

	s.Messages = []*ChatMessage{
		NewAssistantMessage("m1", "first", time.Now()),
		NewAssistantMessage("m2", "second", time.Now()),
	}
	require.NotNil(t, s.LastMessage())
	assert.Equal(t, "m2", s.LastMessage().ID)
}

func TestSessionCloneIsDeep(t *testing.T) {
	s := &Session{
		ID:       "s1",
		Messages: []*ChatMessage{NewAssistantMessage("m1", "hi", time.Now())},
	}

	c := s.Clone()
	c.Messages[0].Content = "changed"
	c.Messages = append(c.Messages, NewUserMessage("extra"))

	assert.Equal(t, "hi", s.Messages[0].Content)
	assert.Len(t, s.Messages, 1)

	var nilSession *Session
	assert.Nil(t, nilSession.Clone())
}

func TestSessionUnmarshalsWireFormat(t *testing.T) {
	raw := `{
		"id":"s1","userId":"u1","title":"notes",
		"createdAt":"2025-06-01T12:00:00Z",
		"messages":[{"id":"m1","role":"user","content":"Hello"}]
	}`

	var s Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "notes", s.Title)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, RoleUser, s.Messages[0].Role)
}

func TestNewSessionSummary(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sum := NewSessionSummary("s1", "notes", created)
	assert.Equal(t, "s1", sum.ID)
	assert.Zero(t, sum.MessageCount)
	assert.Equal(t, created, sum.LastMessageAt)
}

func TestDisplayTitle(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sum := NewSessionSummary("s1", "notes", created)
	assert.Equal(t, "notes", sum.DisplayTitle())

	sum = NewSessionSummary("s1", "", created)
	assert.Equal(t, "Chat Jun 1 12:00", sum.DisplayTitle())
}
