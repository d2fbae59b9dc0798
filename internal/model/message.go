// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// LocalIDPrefix namespaces client-generated message IDs so they can never
// collide with server-issued IDs.
const LocalIDPrefix = "local-"

// ChatMessage represents a single message in a session.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

// NewUserMessage creates an optimistic local user message. The ID carries
// the local prefix; the server never echoes these IDs back.
func NewUserMessage(content string) *ChatMessage {
	return &ChatMessage{
		ID:        LocalIDPrefix + uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message from the first streamed
// fragment of a reply.
func NewAssistantMessage(id, content string, now time.Time) *ChatMessage {
	return &ChatMessage{
		ID:        id,
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: now,
	}
}

// IsLocal reports whether the message carries a client-generated ID.
func (m *ChatMessage) IsLocal() bool {
	return len(m.ID) >= len(LocalIDPrefix) && m.ID[:len(LocalIDPrefix)] == LocalIDPrefix
}

// Clone returns a copy of the message.
func (m *ChatMessage) Clone() *ChatMessage {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
