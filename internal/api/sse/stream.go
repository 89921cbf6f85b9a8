package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Event names sent on a solve stream
const (
	EventRound = "round"
	EventDone  = "done"
	EventError = "error"
)

// Stream writes server-sent events to a single client
type Stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// Start sets the event-stream headers and flushes them to the client.
// It fails when the writer cannot flush.
func Start(w http.ResponseWriter) (*Stream, error) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("streaming unsupported: %w", err)
	}
	return &Stream{w: w, rc: rc}, nil
}

// Send writes data as a JSON event and flushes it
func (s *Stream) Send(event string, data any) error {
	return writeEvent(s.w, s.rc, event, data)
}

// Started reports whether w already carries an event stream, after which
// a plain HTTP error response can no longer be written.
func Started(w http.ResponseWriter) bool {
	return w.Header().Get("Content-Type") == "text/event-stream"
}

// WriteEvent writes one JSON event to an already started stream
func WriteEvent(w http.ResponseWriter, event string, data any) error {
	return writeEvent(w, http.NewResponseController(w), event, data)
}

func writeEvent(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.Write(formatMessage(event, string(payload))); err != nil {
		return err
	}
	return rc.Flush()
}

// formatMessage formats an SSE message with event name and data.
// Each line of data gets its own "data: " prefix.
func formatMessage(event, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// splitLines splits s on newlines, dropping carriage returns and a
// trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
