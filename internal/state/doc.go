// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state implements the chat state machine.
//
// ChatState is the single source of truth for everything the presentation
// layer renders: the session list, the current session with its messages,
// and the loading/streaming/error flags. It changes only through Apply,
// a pure transition function from (state, action) to a new state.
//
// Store wraps a ChatState with the concurrency discipline the rest of the
// application relies on: exactly one writer, ever. Dispatch applies one
// action at a time under a mutex, Snapshot hands out deep copies, and
// Changes notifies observers that a new snapshot is worth taking.
package state
