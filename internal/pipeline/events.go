// Package pipeline provides the high-level orchestration for the course generation process.
package pipeline

// Step discriminator values carried by every tagged progress event.
const (
	StepSyllabus     = "syllabus"
	StepLesson       = "lesson"
	StepContentBlock = "contentBlock"
	StepQuiz         = "quiz"
	StepCompleted    = "completed"
	StepError        = "error"
)

// Status values for stage events.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Status   string `json:"status,omitempty"`
	Message  string `json:"message,omitempty"`
	CourseID string `json:"courseId,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Delivery is
// best-effort: callbacks must not block, and nothing they do can fail
// the pipeline.
type ProgressCallback func(event ProgressEvent)

// NoticeCallback is called with free-text progress notices, which are
// streamed to the client as plain strings rather than tagged objects.
type NoticeCallback func(message string)
