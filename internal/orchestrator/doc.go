// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator is the use-case layer of the chat client.
//
// It sequences calls to the api transports and feeds the results into the
// state store as discrete actions, exposing session and message operations
// as atomic-looking calls to the presentation layer. The orchestrator owns
// no chat state of its own; its only private bookkeeping is the in-flight
// reply stream, tracked so a session switch or delete can cancel it.
//
// Every operation either resolves with the store already updated or leaves
// a human-readable message in the store's error slot. CreateNewSession is
// the one operation that also returns its error, so SendMessage can abort
// silently when implicit session creation fails.
package orchestrator
