package types

// CourseStatus is the lifecycle state of a persisted course.
type CourseStatus string

// Course status values stored with the persisted course graph.
const (
	CourseStatusDraft    CourseStatus = "DRAFT"
	CourseStatusActive   CourseStatus = "ACTIVE"
	CourseStatusArchived CourseStatus = "ARCHIVED"
)

// LessonStub is one entry of the generated syllabus. Duration is a
// free-text human-readable span and is not parsed at this stage.
type LessonStub struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Syllabus is the stage-1 artifact. It drives the per-lesson loop and is
// never mutated after creation.
type Syllabus struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Lessons     []LessonStub `json:"lessons"`
}

// SectionStub is one planned section within a lesson.
type SectionStub struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LessonContext is the stage-2 artifact for one lesson. Title echoes the
// syllabus stub title.
type LessonContext struct {
	Title     string        `json:"title"`
	Objective string        `json:"objective"`
	Sections  []SectionStub `json:"sections"`
}

// SectionContent is one section's raw generated content as returned by
// the section-content stage, before flattening.
type SectionContent struct {
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}

// LessonContentResult is the stage-3 artifact for one lesson.
type LessonContentResult struct {
	Sections []SectionContent `json:"sections"`
}

// LessonRecord aggregates everything generated for one lesson. It is
// built incrementally across three stages and never mutated once
// appended to the course-level list.
type LessonRecord struct {
	LessonTitle    string         `json:"lessonTitle"`
	LessonDuration string         `json:"lessonDuration"`
	Context        LessonContext  `json:"context"`
	ContentBlocks  []ContentBlock `json:"contentBlocks"`
	Quiz           Quiz           `json:"quiz"`
}

// CourseGraph is the fully assembled course handed whole to the
// persistence layer: syllabus fields, ordered lesson records, and the
// post-course artifacts, plus the uniform per-lesson time budgets.
type CourseGraph struct {
	Topic                   string              `json:"topic"`
	UserID                  string              `json:"userId"`
	Title                   string              `json:"title"`
	Description             string              `json:"description"`
	Status                  CourseStatus        `json:"status"`
	LessonTimeBudgetMinutes float64             `json:"lessonTimeBudgetMinutes"`
	QuizTimeBudgetMinutes   float64             `json:"quizTimeBudgetMinutes"`
	Lessons                 []LessonRecord      `json:"lessons"`
	Post                    PostCourseArtifacts `json:"post"`
}
