// Package types provides type definitions for structured data used throughout the course-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Personalization holds optional learner preferences attached to a
// generation request. All fields default to empty/unspecified.
type Personalization struct {
	Level           string `json:"level,omitempty"`
	PreferredTopics string `json:"preferredTopics,omitempty"`
	DislikedTopics  string `json:"dislikedTopics,omitempty"`
	Goal            string `json:"goal,omitempty"`
	TimeCommitment  string `json:"timeCommitment,omitempty"` // hour count encoded as text, e.g. "10"
	LearningStyle   string `json:"learningStyle,omitempty"`
}

// GenerationRequest is the single inbound request for one course
// generation run. It is immutable once received and validated exactly
// once at entry.
type GenerationRequest struct {
	Topic           string           `json:"topic" validate:"required"`
	UserID          string           `json:"userId" validate:"required"`
	Personalization *Personalization `json:"personalization,omitempty"`
}

// Validate validates the GenerationRequest using the validator.
// It fails fast before any generation call is made.
func (r *GenerationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &ValidationError{Message: "invalid generation request", Cause: err}
	}
	return nil
}

// ValidationError represents a malformed or incomplete inbound request.
// It is fatal to the run and never retried.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
