// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for communicating with the remote
// chat service.
package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// WIRE FRAMING
// =============================================================================

// Line markers of the event framing. A data line carries one JSON-encoded
// chunk record; a complete line ends the stream immediately, regardless of
// anything still buffered.
const (
	dataMarker     = "data: "
	completeMarker = "event: complete"
)

// chunkFieldAliases maps each canonical chunk field to the JSON keys the
// service is known to emit for it. The service has shipped both PascalCase
// and camelCase; supporting another convention later is a one-line change
// here.
var chunkFieldAliases = map[string][]string{
	"messageId":  {"messageId", "MessageId"},
	"content":    {"content", "Content"},
	"isComplete": {"isComplete", "IsComplete"},
	"timestamp":  {"timestamp", "Timestamp"},
}

// decodeChunk parses one data-line payload into a canonical StreamChunk,
// accepting any field casing listed in the alias table.
func decodeChunk(data []byte) (*StreamChunk, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	pick := func(field string) (json.RawMessage, bool) {
		for _, key := range chunkFieldAliases[field] {
			if v, ok := raw[key]; ok {
				return v, true
			}
		}
		return nil, false
	}

	chunk := &StreamChunk{}
	if v, ok := pick("messageId"); ok {
		if err := json.Unmarshal(v, &chunk.MessageID); err != nil {
			return nil, err
		}
	}
	if v, ok := pick("content"); ok {
		if err := json.Unmarshal(v, &chunk.Content); err != nil {
			return nil, err
		}
	}
	if v, ok := pick("isComplete"); ok {
		if err := json.Unmarshal(v, &chunk.IsComplete); err != nil {
			return nil, err
		}
	}
	if v, ok := pick("timestamp"); ok {
		// Timestamps are advisory; a malformed one does not invalidate
		// the fragment.
		var ts time.Time
		if err := json.Unmarshal(v, &ts); err == nil {
			chunk.Timestamp = ts
		}
	}
	return chunk, nil
}

// =============================================================================
// STREAM
// =============================================================================

// Stream is one in-flight assistant reply. Events are delivered in wire
// order on the Events channel until a terminal Done or Err event, after
// which the channel closes. Close releases the underlying connection and
// stops delivery; it is safe to call more than once.
type Stream struct {
	events    chan StreamEvent
	cancel    context.CancelFunc
	body      io.ReadCloser
	closeOnce sync.Once
}

// Events returns the event channel. The channel closes after the terminal
// event, or after Close.
func (s *Stream) Events() <-chan StreamEvent {
	return s.events
}

// Close cancels the stream and releases the response body. No events are
// delivered once cancellation is observed, even if bytes were already
// buffered.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.body.Close()
	})
}

// run feeds the event channel from the response body until terminal.
func (s *Stream) run(ctx context.Context, logger *zap.Logger) {
	defer close(s.events)
	defer s.body.Close()

	emit := func(ev StreamEvent) bool {
		select {
		case s.events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	runStream(ctx, s.body, emit, logger)
}

// runStream reads the line-oriented event framing and emits decoded events
// until the stream is terminal. The reader delivers an unbounded byte
// stream with arbitrary read boundaries; partial trailing lines are
// retained until their newline arrives. Malformed data lines are logged
// and skipped without terminating the stream.
func runStream(ctx context.Context, r io.Reader, emit func(StreamEvent) bool, logger *zap.Logger) {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadBytes('\n')

		// A final line without a trailing newline still counts.
		if len(line) > 0 {
			if terminal := processLine(line, emit, logger); terminal {
				return
			}
		}

		if err != nil {
			if err == io.EOF {
				// Transport-level completion.
				emit(StreamEvent{Done: true})
				return
			}
			if ctx.Err() != nil {
				// Cancelled by the consumer; stay silent.
				return
			}
			emit(StreamEvent{Err: &APIError{Message: "stream read failed", Cause: err}})
			return
		}
	}
}

// processLine handles one framed line. It returns true when the line ended
// the stream (explicit completion marker, or a consumer that stopped
// listening).
func processLine(line []byte, emit func(StreamEvent) bool, logger *zap.Logger) bool {
	text := strings.TrimRight(string(line), "\r\n")
	if strings.TrimSpace(text) == "" {
		return false
	}

	if strings.HasPrefix(text, completeMarker) {
		emit(StreamEvent{Done: true})
		return true
	}

	if strings.HasPrefix(text, dataMarker) {
		chunk, err := decodeChunk([]byte(text[len(dataMarker):]))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping malformed stream record",
					zap.String("line", text),
					zap.Error(err))
			}
			return false
		}
		return !emit(StreamEvent{Chunk: chunk})
	}

	// Unknown line types are ignored for forward compatibility.
	return false
}

// =============================================================================
// SEND MESSAGE
// =============================================================================

// SendMessage posts a message to a session and opens the reply stream.
// The returned Stream is live immediately; the caller owns it and must
// drain Events or call Close. The request inherits cancellation from ctx.
func (c *Client) SendMessage(ctx context.Context, sessionID string, req SendMessageRequest) (*Stream, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{Message: "request cancelled", Cause: err}
	}
	if req.Model == "" {
		req.Model = c.config.DefaultModel
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &APIError{Message: "failed to encode message", Cause: err}
	}

	sctx, cancel := context.WithCancel(ctx)

	url := c.config.BaseURL + "/api/chat/sessions/" + sessionID + "/messages"
	httpReq, err := http.NewRequestWithContext(sctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, &APIError{Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// The stream client carries no timeout: replies can legitimately take
	// minutes, and cancellation rides on the context instead.
	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		cancel()
		return nil, &APIError{Message: "failed to send message", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		defer cancel()
		apiErr := &APIError{
			Message: "HTTP " + resp.Status,
			Status:  resp.StatusCode,
		}
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096)); readErr == nil && len(raw) > 0 {
			var envelope errorBody
			if jsonErr := json.Unmarshal(raw, &envelope); jsonErr == nil && envelope.Message != "" {
				apiErr.Message = envelope.Message
				apiErr.Code = envelope.Code
			} else {
				apiErr.Message = string(raw)
			}
		}
		return nil, apiErr
	}

	s := &Stream{
		events: make(chan StreamEvent),
		cancel: cancel,
		body:   resp.Body,
	}
	go s.run(sctx, c.logger)
	return s, nil
}
