// Package generate turns an unreliable free-text model backend into a
// source of parseable structured values, with normalization and bounded
// retry around every call.
package generate

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jonathan/course-generator/internal/llm"
)

// Backend is the narrow collaborator interface to the text-generation
// model: prompt in, raw text out, may fail. The tier selects model
// capability per call; each pipeline stage picks its own.
type Backend interface {
	GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

// Generator wraps a Backend call with output normalization, JSON
// parsing, and retry with linear backoff. Backend failures and parse
// failures are treated identically for retry purposes.
type Generator struct {
	backend     Backend
	maxAttempts int
	baseDelay   time.Duration
}

// New creates a Generator. maxAttempts values below 1 are treated as 1.
func New(backend Backend, maxAttempts int, baseDelay time.Duration) *Generator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Generator{
		backend:     backend,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Generate invokes the backend until one attempt yields parseable JSON
// or the attempt budget is spent. Attempt failures are logged at warning
// level and only surfaced to the caller through ExhaustedError. The wait
// before attempt n+1 is n * baseDelay.
func (g *Generator) Generate(ctx context.Context, prompt string, tier llm.ModelTier) (json.RawMessage, error) {
	var lastErr error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.tryOnce(ctx, prompt, tier)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		log.Printf("[generate] warning: attempt %d/%d failed: %v", attempt, g.maxAttempts, err)

		if attempt == g.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * g.baseDelay):
		}
	}

	return nil, &ExhaustedError{Attempts: g.maxAttempts, LastErr: lastErr}
}

func (g *Generator) tryOnce(ctx context.Context, prompt string, tier llm.ModelTier) (json.RawMessage, error) {
	text, err := g.backend.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(text)

	var parsed any
	if err := json.Unmarshal([]byte(normalized), &parsed); err != nil {
		return nil, &ParseError{Cause: err}
	}

	return json.RawMessage(normalized), nil
}
