package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/pipeline"
	"github.com/jonathan/course-generator/internal/types"
)

// geminiBackend adapts an llm.Client to the generation backend contract.
// Every pipeline stage expects a JSON reply, so GenerateJSON is used
// throughout; the stage picks the tier.
type geminiBackend struct {
	client llm.Client
}

func (b *geminiBackend) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return b.client.GenerateJSON(ctx, prompt, tier)
}

// handleGenerateStream runs a full course generation and streams
// progress via SSE. The run is synchronous: the response stream stays
// open until the terminal completed or error event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Setup SSE writer
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		log.Printf("Request validation failed: %v", err)
		sse.WriteError(clientMessage(err))
		return
	}

	ctx := r.Context()

	apiKey, err := llm.PickKey(s.cfg.GeminiAPIKeys, llm.DefaultRand())
	if err != nil {
		log.Printf("Credential selection failed: %v", err)
		sse.WriteError("generation service is not configured")
		return
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		log.Printf("LLM client init failed: %v", err)
		sse.WriteError("generation service is not configured")
		return
	}
	defer client.Close() //nolint:errcheck

	log.Printf("Starting course generation for topic %q (user %s)", req.Topic, req.UserID)

	opts := pipeline.RunOptions{
		Request:     req,
		Backend:     &geminiBackend{client: client},
		Store:       s.db,
		MaxAttempts: s.cfg.MaxGenerationAttempts,
		BaseDelay:   s.cfg.RetryBaseDelay,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent(event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
		OnNotice: func(message string) {
			if err := sse.WriteNotice(message); err != nil {
				log.Printf("Error writing SSE notice: %v", err)
			}
		},
	}

	courseID, err := pipeline.Run(ctx, opts)
	if err != nil {
		// The full cause stays operator-side; the stream gets a
		// category-level message.
		log.Printf("Course generation failed: %v", err)
		sse.WriteError(clientMessage(err))
		return
	}

	sse.WriteComplete(courseID.String())
	log.Printf("Course generation completed: %s", courseID)
}

// handleGetCourse returns a persisted course graph
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	graph, err := s.db.GetCourse(r.Context(), courseID)
	if err != nil {
		log.Printf("Error fetching course %s: %v", courseID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch course")
		return
	}
	if graph == nil {
		s.errorResponse(w, http.StatusNotFound, "Course not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, graph)
}
