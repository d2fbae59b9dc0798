// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and messages.
//
// These types mirror the wire representation of the remote chat service:
// a Session is one persisted conversation thread with an ordered message
// history, a SessionSummary is the projection of a Session used for list
// display, and a ChatMessage is a single user or assistant turn.
//
// Message sequences are chronological and append-only. The only message
// whose content ever changes after insertion is the assistant message
// currently being streamed; once the stream completes it is immutable.
package model
