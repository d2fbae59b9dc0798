// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the remote
// chat service.
//
// The package covers two transports:
//
//   - Request/response calls for session management (create, list, get,
//     delete) and the liveness probe, issued through a resty client.
//   - A streaming transport for assistant replies: SendMessage opens one
//     long-lived response whose body is a line-oriented event stream, and
//     returns a Stream that yields decoded events until a terminal
//     completion or error.
//
// All failures surface as *APIError carrying the HTTP status and an
// optional machine-readable code. The client never retries; callers decide
// what to do with a failed operation.
package api
