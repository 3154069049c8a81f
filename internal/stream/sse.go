package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// SSEEmitter writes events to an HTTP response as server-sent events, one
// frame per event: "event: <type>\ndata: <json>\n\n". Every frame is flushed
// as it is written; buffering until the end would defeat incremental
// highlighting on the client.
type SSEEmitter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	failed  bool
}

// NewSSEEmitter prepares the response for streaming and returns the emitter.
// Fails when the underlying writer cannot flush.
func NewSSEEmitter(w http.ResponseWriter) (*SSEEmitter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEEmitter{w: w, flusher: flusher}, nil
}

// Emit writes one event frame and flushes it.
func (e *SSEEmitter) Emit(event Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.failed {
		return fmt.Errorf("stream already failed")
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	if _, err := fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		e.failed = true
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}
	e.flusher.Flush()
	return nil
}
