package server

import (
	"context"
	"errors"

	"github.com/jonathan/course-generator/internal/db"
	"github.com/jonathan/course-generator/internal/generate"
	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/schemas"
	"github.com/jonathan/course-generator/internal/types"
)

// clientMessage maps a pipeline failure to the message streamed to the
// client. Internal detail (prompts, raw model output, SQL errors) never
// crosses the wire; the category is enough for a caller to act on.
func clientMessage(err error) string {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		// The validator's message names Go struct fields; the fixed
		// message states the contract without them.
		return "invalid request: topic and userId are required"
	}

	var credErr *llm.CredentialMissingError
	if errors.As(err, &credErr) {
		return "generation service is not configured"
	}

	var exhaustedErr *generate.ExhaustedError
	if errors.As(err, &exhaustedErr) {
		return "the model did not return usable output; please try again"
	}

	var stageErr *schemas.StageError
	if errors.As(err, &stageErr) {
		return "the model returned malformed " + stageErr.Stage + " output; please try again"
	}

	var persistErr *db.PersistenceError
	if errors.As(err, &persistErr) {
		return "the course could not be saved"
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "generation was cancelled"
	}

	return "course generation failed"
}
