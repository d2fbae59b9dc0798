// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the remote
// chat service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/relaychat/relay-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// APIError represents a structured error from the chat service. Status is
// the HTTP status when one was received (0 for pure network failures) and
// Code is an optional machine-readable identifier from the error body.
type APIError struct {
	Message string
	Status  int
	Code    string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsRateLimited reports whether the error is a 429 from the service.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests
}

// IsServerError reports whether the error is a 5xx from the service.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the chat service client.
type ClientConfig struct {
	// BaseURL is the chat service base URL (default: http://127.0.0.1:5000)
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// HealthTimeout bounds the liveness probe (default: 5s)
	HealthTimeout time.Duration

	// DefaultModel to request when the caller does not name one
	DefaultModel string

	// RequestsPerSecond limits mutating calls client-side. The limiter
	// delays, it never drops. Zero keeps the default of 2/s.
	RequestsPerSecond float64

	// Logger receives decode warnings from the stream reader. Nil means
	// no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:5000",
		Timeout:           30 * time.Second,
		HealthTimeout:     5 * time.Second,
		RequestsPerSecond: 2,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat service. It is safe for
// concurrent use.
type Client struct {
	config *ClientConfig
	rest   *resty.Client

	// Streaming responses bypass resty: the long-lived body must not be
	// subject to the request timeout, and resty would buffer it.
	streamClient *http.Client

	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration. Zero
// fields fall back to defaults.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 5 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 2
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rest := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config:       config,
		rest:         rest,
		streamClient: &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 4),
		logger:       logger,
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// DefaultModel returns the configured default model, which may be empty.
func (c *Client) DefaultModel() string {
	return c.config.DefaultModel
}

// SetDefaultModel updates the configured default model.
func (c *Client) SetDefaultModel(model string) {
	c.config.DefaultModel = model
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// CreateSession creates a new chat session. The title may be empty; the
// service does not validate its content.
func (c *Client) CreateSession(ctx context.Context, title string) (*CreateSessionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Message: "request cancelled", Cause: err}
	}

	var out CreateSessionResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(CreateSessionRequest{Title: title}).
		SetResult(&out).
		Post("/api/chat/sessions")
	if err != nil {
		return nil, &APIError{Message: "failed to create session", Cause: err}
	}
	if resp.IsError() {
		return nil, apiErrorFromResponse(resp)
	}
	return &out, nil
}

// ListSessions retrieves all session summaries. Ordering is server-defined,
// most recent first.
func (c *Client) ListSessions(ctx context.Context) ([]model.SessionSummary, error) {
	var out []model.SessionSummary
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/chat/sessions")
	if err != nil {
		return nil, &APIError{Message: "failed to load sessions", Cause: err}
	}
	if resp.IsError() {
		return nil, apiErrorFromResponse(resp)
	}
	return out, nil
}

// GetSession retrieves one full session including its messages. Returns a
// 404 APIError if the ID is unknown to the service.
func (c *Client) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var out model.Session
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/chat/sessions/" + id)
	if err != nil {
		return nil, &APIError{Message: "failed to load session", Cause: err}
	}
	if resp.IsError() {
		return nil, apiErrorFromResponse(resp)
	}
	return &out, nil
}

// DeleteSession removes a session. Deleting an unknown ID returns a 404
// APIError; callers that want idempotent semantics treat that as success.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		Delete("/api/chat/sessions/" + id)
	if err != nil {
		return &APIError{Message: "failed to delete session", Cause: err}
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth probes GET /health. The result is advisory, used for
// connectivity display only.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return false
	}
	return resp.IsSuccess()
}

// =============================================================================
// HELPERS
// =============================================================================

// apiErrorFromResponse converts a non-2xx resty response into an APIError,
// preferring the service's JSON error envelope over the raw status text.
func apiErrorFromResponse(resp *resty.Response) *APIError {
	apiErr := &APIError{
		Message: "HTTP " + resp.Status(),
		Status:  resp.StatusCode(),
	}

	body := resp.Body()
	if len(body) == 0 {
		return apiErr
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		apiErr.Code = envelope.Code
	} else {
		apiErr.Message = string(body)
	}
	return apiErr
}
