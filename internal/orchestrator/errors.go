// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator is the use-case layer of the chat client.
package orchestrator

import (
	"errors"
	"net/http"

	"github.com/relaychat/relay-tui/internal/api"
)

// User-facing messages for the error classes the service distinguishes.
const (
	msgNotFound    = "Session not found. Please start a new chat."
	msgRateLimited = "Too many requests. Please wait a moment and try again."
	msgServerError = "Server error. Please try again later."
	msgUnexpected  = "An unexpected error occurred."
)

// FormatError maps a transport error to the text shown to the user.
// Status classes the user can act on get distinct messages; anything else
// passes the raw message through.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return msgNotFound
		case apiErr.Status == http.StatusTooManyRequests:
			return msgRateLimited
		case apiErr.Status >= http.StatusInternalServerError:
			return msgServerError
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgUnexpected
}
