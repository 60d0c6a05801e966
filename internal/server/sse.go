package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/course-generator/internal/pipeline"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends a tagged progress event
func (s *SSEWriter) WriteEvent(event pipeline.ProgressEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event.Step); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteNotice sends a free-text notice as a plain string payload
func (s *SSEWriter) WriteNotice(message string) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: notice\ndata: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends the terminal error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(pipeline.ProgressEvent{ //nolint:errcheck
		Step:    pipeline.StepError,
		Message: message,
	})
}

// WriteComplete sends the terminal completion event carrying the
// persisted course id
func (s *SSEWriter) WriteComplete(courseID string) {
	s.WriteEvent(pipeline.ProgressEvent{ //nolint:errcheck
		Step:     pipeline.StepCompleted,
		Status:   pipeline.StatusCompleted,
		CourseID: courseID,
	})
}
