// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs the framing reader over r and returns every emitted event.
func collect(t *testing.T, r *strings.Reader, oneByte bool) []StreamEvent {
	t.Helper()
	var events []StreamEvent
	emit := func(ev StreamEvent) bool {
		events = append(events, ev)
		return true
	}
	var src = iotest.OneByteReader(r)
	if !oneByte {
		src = r
	}
	runStream(context.Background(), src, emit, nil)
	return events
}

func TestRunStreamDecodesChunks(t *testing.T) {
	wire := "data: {\"messageId\":\"m1\",\"content\":\"Hi\",\"isComplete\":false}\n" +
		"data: {\"messageId\":\"m1\",\"content\":\" there!\",\"isComplete\":true}\n" +
		"event: complete\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 3)

	require.NotNil(t, events[0].Chunk)
	assert.Equal(t, "m1", events[0].Chunk.MessageID)
	assert.Equal(t, "Hi", events[0].Chunk.Content)
	assert.False(t, events[0].Chunk.IsComplete)

	require.NotNil(t, events[1].Chunk)
	assert.Equal(t, " there!", events[1].Chunk.Content)
	assert.True(t, events[1].Chunk.IsComplete)

	assert.True(t, events[2].Done)
}

func TestRunStreamHandlesArbitraryReadBoundaries(t *testing.T) {
	// One byte per read: lines arrive in fragments and must be reassembled.
	wire := "data: {\"messageId\":\"m1\",\"content\":\"hello world\"}\nevent: complete\n"

	events := collect(t, strings.NewReader(wire), true)
	require.Len(t, events, 2)
	assert.Equal(t, "hello world", events[0].Chunk.Content)
	assert.True(t, events[1].Done)
}

func TestRunStreamAcceptsPascalCaseFields(t *testing.T) {
	wire := "data: {\"MessageId\":\"m1\",\"Content\":\"Hi\",\"IsComplete\":true}\n" +
		"event: complete\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 2)
	assert.Equal(t, "m1", events[0].Chunk.MessageID)
	assert.Equal(t, "Hi", events[0].Chunk.Content)
	assert.True(t, events[0].Chunk.IsComplete)
}

func TestRunStreamSkipsMalformedLines(t *testing.T) {
	wire := "data: {not json}\n" +
		"data: {\"messageId\":\"m1\",\"content\":\"ok\"}\n" +
		"event: complete\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 2, "malformed record is skipped, not fatal")
	assert.Equal(t, "ok", events[0].Chunk.Content)
	assert.True(t, events[1].Done)
}

func TestRunStreamIgnoresBlankAndUnknownLines(t *testing.T) {
	wire := "\n" +
		": keepalive\n" +
		"data: {\"messageId\":\"m1\",\"content\":\"x\"}\n" +
		"event: complete\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 2)
	assert.Equal(t, "x", events[0].Chunk.Content)
}

func TestRunStreamCompleteMarkerWinsImmediately(t *testing.T) {
	// Data after the completion marker must never surface.
	wire := "event: complete\n" +
		"data: {\"messageId\":\"m1\",\"content\":\"late\"}\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
}

func TestRunStreamEOFIsCompletion(t *testing.T) {
	wire := "data: {\"messageId\":\"m1\",\"content\":\"x\"}\n"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 2)
	assert.True(t, events[1].Done, "clean EOF counts as completion")
}

func TestRunStreamFinalLineWithoutNewline(t *testing.T) {
	wire := "data: {\"messageId\":\"m1\",\"content\":\"partial\"}"

	events := collect(t, strings.NewReader(wire), false)
	require.Len(t, events, 2)
	assert.Equal(t, "partial", events[0].Chunk.Content)
	assert.True(t, events[1].Done)
}

func TestRunStreamReadErrorEmitsErr(t *testing.T) {
	boom := fmt.Errorf("connection reset")
	var events []StreamEvent
	emit := func(ev StreamEvent) bool {
		events = append(events, ev)
		return true
	}
	runStream(context.Background(), iotest.ErrReader(boom), emit, nil)

	require.Len(t, events, 1)
	require.Error(t, events[0].Err)
	var apiErr *APIError
	require.ErrorAs(t, events[0].Err, &apiErr)
	assert.ErrorIs(t, apiErr.Cause, boom)
}

func TestRunStreamCancelledContextStaysSilent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var events []StreamEvent
	emit := func(ev StreamEvent) bool {
		events = append(events, ev)
		return true
	}
	runStream(ctx, iotest.ErrReader(context.Canceled), emit, nil)

	assert.Empty(t, events, "cancellation must not surface as an error event")
}

func TestDecodeChunkTolerantTimestamp(t *testing.T) {
	chunk, err := decodeChunk([]byte(`{"messageId":"m1","content":"x","timestamp":"not-a-time"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", chunk.Content)
	assert.True(t, chunk.Timestamp.IsZero(), "bad timestamp is dropped, not fatal")
}

func TestSendMessageStreamsReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chat/sessions/s1/messages", r.URL.Path)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"messageId\":\"m1\",\"content\":\"Hi\"}\n")
		fmt.Fprint(w, "data: {\"messageId\":\"m1\",\"content\":\" there!\",\"isComplete\":true}\n")
		fmt.Fprint(w, "event: complete\n")
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1000})
	stream, err := client.SendMessage(context.Background(), "s1", SendMessageRequest{Content: "Hello"})
	require.NoError(t, err)
	defer stream.Close()

	var got []StreamEvent
	for ev := range stream.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "Hi", got[0].Chunk.Content)
	assert.Equal(t, " there!", got[1].Chunk.Content)
	assert.True(t, got[2].Done)
}

func TestSendMessageFillsDefaultModel(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		fmt.Fprint(w, "event: complete\n")
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{
		BaseURL:           srv.URL,
		DefaultModel:      "relay-small",
		RequestsPerSecond: 1000,
	})
	stream, err := client.SendMessage(context.Background(), "s1", SendMessageRequest{Content: "Hi"})
	require.NoError(t, err)
	defer stream.Close()
	for range stream.Events() {
	}

	assert.Contains(t, gotBody, `"model":"relay-small"`)
}

func TestSendMessageNon200ReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"no such session","code":"not_found"}`)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1000})
	_, err := client.SendMessage(context.Background(), "missing", SendMessageRequest{Content: "Hi"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no such session", apiErr.Message)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestStreamCloseStopsDelivery(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl, ok := w.(http.Flusher)
		require.True(t, ok)
		fmt.Fprint(w, "data: {\"messageId\":\"m1\",\"content\":\"x\"}\n")
		fl.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, RequestsPerSecond: 1000})
	stream, err := client.SendMessage(context.Background(), "s1", SendMessageRequest{Content: "Hi"})
	require.NoError(t, err)

	// Take the first chunk, then cancel.
	ev := <-stream.Events()
	require.NotNil(t, ev.Chunk)
	stream.Close()

	// The channel must close without a terminal event.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-stream.Events():
			if !ok {
				return
			}
			assert.Nil(t, ev.Chunk, "no further chunks after Close")
		case <-deadline:
			t.Fatal("stream did not shut down after Close")
		}
	}
}
