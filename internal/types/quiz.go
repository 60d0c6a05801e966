package types

// QuestionType is the kind of a quiz question.
type QuestionType string

// Question kinds. Options and correct answers are required for every
// kind except DESCRIPTIVE; a rubric is required only for DESCRIPTIVE.
const (
	QuestionMCQ            QuestionType = "MCQ"
	QuestionMultipleSelect QuestionType = "MULTIPLE_SELECT"
	QuestionDescriptive    QuestionType = "DESCRIPTIVE"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
)

// QuizStatus is the attempt state stored with a persisted quiz.
type QuizStatus string

// Quiz status values.
const (
	QuizStatusPending QuizStatus = "PENDING"
	QuizStatusPassed  QuizStatus = "PASSED"
	QuizStatusFailed  QuizStatus = "FAILED"
)

// Question is one quiz question. Number values form a dense 1-based
// sequence with no gaps.
type Question struct {
	Number         int          `json:"number"`
	Question       string       `json:"question"`
	Type           QuestionType `json:"type"`
	Options        []string     `json:"options,omitempty"`
	Marks          int          `json:"marks"`
	CorrectAnswers []string     `json:"correctAnswers,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	Rubric         string       `json:"rubric,omitempty"`
}

// Quiz is the stage-4 artifact for one lesson.
type Quiz struct {
	Title        string     `json:"title"`
	Duration     string     `json:"duration"`
	TotalMarks   int        `json:"totalMarks"`
	PassingMarks int        `json:"passingMarks"`
	Questions    []Question `json:"questions"`
}
