// Package schemas provides JSON Schema validation at every stage
// boundary of the generation pipeline. Raw model output is validated
// against the stage's embedded schema and decoded into the stage's typed
// record, so malformed output fails fast with a distinguishable error
// kind instead of leaking into later prompt construction.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/course-generator/internal/types"
)

//go:embed *.json
var schemaFiles embed.FS

// Stage names used in error reporting.
const (
	StageSyllabus       = "syllabus"
	StageLessonContext  = "lesson-context"
	StageSectionContent = "section-content"
	StageQuiz           = "quiz"
	StagePostCourse     = "post-course"
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// StageError indicates a stage's output does not satisfy that stage's
// schema. It is distinct from generation exhaustion: the backend
// produced parseable JSON of the wrong shape.
type StageError struct {
	Stage  string
	Errors []FieldError
	Cause  error
}

func (e *StageError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "stage %s output failed validation", e.Stage)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// DecodeSyllabus validates and decodes the stage-1 artifact.
func DecodeSyllabus(raw json.RawMessage) (*types.Syllabus, error) {
	var out types.Syllabus
	if err := decodeStage(StageSyllabus, "syllabus.json", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeLessonContext validates and decodes the stage-2 artifact.
func DecodeLessonContext(raw json.RawMessage) (*types.LessonContext, error) {
	var out types.LessonContext
	if err := decodeStage(StageLessonContext, "lesson_context.json", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeSectionContent validates and decodes the stage-3 artifact.
func DecodeSectionContent(raw json.RawMessage) (*types.LessonContentResult, error) {
	var out types.LessonContentResult
	if err := decodeStage(StageSectionContent, "section_content.json", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeQuiz validates and decodes the stage-4 artifact.
func DecodeQuiz(raw json.RawMessage) (*types.Quiz, error) {
	var out types.Quiz
	if err := decodeStage(StageQuiz, "quiz.json", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodePostCourse validates and decodes the stage-5 artifact.
func DecodePostCourse(raw json.RawMessage) (*types.PostCourseArtifacts, error) {
	var out types.PostCourseArtifacts
	if err := decodeStage(StagePostCourse, "post_course.json", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// decodeStage validates raw JSON against the stage's embedded schema,
// then unmarshals it into the typed record.
func decodeStage(stage, filename string, raw json.RawMessage, out any) error {
	schemaBytes, err := schemaFiles.ReadFile(filename)
	if err != nil {
		return &StageError{Stage: stage, Cause: fmt.Errorf("failed to read schema %s: %w", filename, err)}
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &StageError{Stage: stage, Cause: err}
	}

	if !result.Valid() {
		stageErr := &StageError{
			Stage:  stage,
			Errors: make([]FieldError, 0, len(result.Errors())),
		}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			stageErr.Errors = append(stageErr.Errors, FieldError{
				Field:   field,
				Message: desc.Description(),
			})
		}
		return stageErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &StageError{Stage: stage, Cause: fmt.Errorf("failed to decode validated output: %w", err)}
	}
	return nil
}
