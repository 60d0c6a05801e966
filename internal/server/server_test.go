package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-generator/internal/config"
	"github.com/jonathan/course-generator/internal/db"
	"github.com/jonathan/course-generator/internal/generate"
	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/pipeline"
	"github.com/jonathan/course-generator/internal/schemas"
	"github.com/jonathan/course-generator/internal/types"
)

func testServer() *Server {
	return &Server{
		cfg: &config.Config{
			Port:                  8080,
			GeminiAPIKeys:         []string{"test-key"},
			MaxGenerationAttempts: 1,
		},
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	s.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleGenerateStream_InvalidBody(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses/stream", strings.NewReader("{not json"))

	s.handleGenerateStream(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleGenerateStream_MissingUserID(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses/stream",
		strings.NewReader(`{"topic": "Go"}`))

	s.handleGenerateStream(rec, req)

	// Stream opens, then carries exactly one terminal error event.
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "invalid request: topic and userId are required")
	assert.Equal(t, 1, strings.Count(body, "event:"))

	// The validator's internal detail stays operator-side.
	assert.NotContains(t, body, "UserID")
	assert.NotContains(t, body, "GenerationRequest")
	assert.NotContains(t, body, "required' tag")
}

func TestHandleGenerateStream_NoCredentials(t *testing.T) {
	s := testServer()
	s.cfg.GeminiAPIKeys = nil
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/courses/stream",
		strings.NewReader(`{"topic": "Go", "userId": "user-1"}`))

	s.handleGenerateStream(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "generation service is not configured")
	// The missing key detail never reaches the client.
	assert.NotContains(t, body, "API key")
}

func TestSSEWriter_EventFraming(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent(pipeline.ProgressEvent{
		Step:   pipeline.StepSyllabus,
		Status: pipeline.StatusCompleted,
	}))
	require.NoError(t, sse.WriteNotice("Planned 3 lessons"))
	sse.WriteComplete("course-1")

	body := rec.Body.String()
	assert.Contains(t, body, "event: syllabus\ndata: ")
	assert.Contains(t, body, "event: notice\ndata: \"Planned 3 lessons\"\n\n")
	assert.Contains(t, body, "event: completed\n")
	assert.Contains(t, body, `"courseId":"course-1"`)
}

func TestSSEWriter_RequiresFlusher(t *testing.T) {
	_, err := NewSSEWriter(nonFlushingWriter{})
	assert.Error(t, err)
}

// nonFlushingWriter implements http.ResponseWriter but not http.Flusher.
type nonFlushingWriter struct{}

func (nonFlushingWriter) Header() http.Header       { return http.Header{} }
func (nonFlushingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (nonFlushingWriter) WriteHeader(int)           {}

func TestClientMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation error collapses to the fixed contract message",
			err:      &types.ValidationError{Message: "invalid generation request", Cause: errors.New("Key: 'GenerationRequest.UserID' failed on the 'required' tag")},
			expected: "invalid request: topic and userId are required",
		},
		{
			name:     "missing credential is generic",
			err:      &llm.CredentialMissingError{Slot: 2},
			expected: "generation service is not configured",
		},
		{
			name:     "exhausted retries are generic",
			err:      &generate.ExhaustedError{Attempts: 3, LastErr: errors.New("bad json")},
			expected: "the model did not return usable output; please try again",
		},
		{
			name:     "stage error names the stage only",
			err:      &schemas.StageError{Stage: schemas.StageQuiz},
			expected: "the model returned malformed quiz output; please try again",
		},
		{
			name:     "persistence error hides SQL detail",
			err:      &db.PersistenceError{Op: "insert course", Cause: errors.New("duplicate key")},
			expected: "the course could not be saved",
		},
		{
			name:     "cancellation",
			err:      context.Canceled,
			expected: "generation was cancelled",
		},
		{
			name:     "anything else is fully generic",
			err:      errors.New("pipeline fault: syllabus contains no lessons"),
			expected: "course generation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clientMessage(tt.err))
		})
	}
}
