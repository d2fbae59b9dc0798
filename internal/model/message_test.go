// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserMessage(t *testing.T) {
	m := NewUserMessage("hello")
	assert.Equal(t, RoleUser, m.Role)
	assert.Equal(t, "hello", m.Content)
	assert.True(t, strings.HasPrefix(m.ID, LocalIDPrefix))
	assert.True(t, m.IsLocal())
	assert.False(t, m.Timestamp.IsZero())
}

func TestUserMessageIDsAreUnique(t *testing.T) {
	a := NewUserMessage("x")
	b := NewUserMessage("x")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIsLocal(t *testing.T) {
	assert.True(t, (&ChatMessage{ID: "local-abc"}).IsLocal())
	assert.False(t, (&ChatMessage{ID: "srv-abc"}).IsLocal())
	assert.False(t, (&ChatMessage{ID: ""}).IsLocal())
}

func TestMessageClone(t *testing.T) {
	m := NewAssistantMessage("m1", "hi", time.Now())
	c := m.Clone()
	c.Content = "changed"
	assert.Equal(t, "hi", m.Content)

	var nilMsg *ChatMessage
	assert.Nil(t, nilMsg.Clone())
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleAssistant.DisplayName())
	assert.Equal(t, "system", Role("system").DisplayName())
}

func TestMessageJSONFieldNames(t *testing.T) {
	m := ChatMessage{ID: "m1", Role: RoleAssistant, Content: "hi", Model: "relay-small"}
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "role")
	assert.Contains(t, fields, "content")
	assert.Contains(t, fields, "model")
}
