package prompts

import (
	"fmt"
	"strings"

	"github.com/jonathan/course-generator/internal/types"
)

// Schema shape text embedded into each stage prompt. Downstream parsing
// assumes a fixed shape per stage, so these stay constant within a run.
const (
	syllabusShape = `{
  "title": "string",
  "description": "string",
  "lessons": [
    {"title": "string", "duration": "string, human readable, e.g. '45 minutes'"}
  ]
}`

	lessonContextShape = `{
  "title": "string, must echo the lesson title exactly",
  "objective": "string",
  "sections": [
    {"title": "string", "description": "string"}
  ]
}`

	sectionContentShape = `{
  "sections": [
    {
      "title": "string, must echo the section title exactly",
      "blocks": [
        {
          "type": "TEXT | CODE | MATH | GRAPH",
          "text": "string, only when type is TEXT",
          "code": "string, only when type is CODE",
          "math": "string (LaTeX), only when type is MATH",
          "graph": {
            "title": "string",
            "xLabel": "string",
            "yLabel": "string",
            "functions": ["string, e.g. 'y = x^2'"],
            "points": [{"x": 0, "y": 0}]
          }
        }
      ]
    }
  ]
}`

	quizShape = `{
  "title": "string",
  "duration": "string, human readable",
  "totalMarks": 10,
  "passingMarks": 6,
  "questions": [
    {
      "number": 1,
      "question": "string",
      "type": "MCQ | MULTIPLE_SELECT | DESCRIPTIVE | TRUE_FALSE",
      "options": ["string, required unless type is DESCRIPTIVE"],
      "marks": 2,
      "correctAnswers": ["string, required unless type is DESCRIPTIVE"],
      "explanation": "string",
      "rubric": "string, required only when type is DESCRIPTIVE"
    }
  ]
}`

	postCourseShape = `{
  "summary": {
    "overview": "string",
    "whatYouLearned": ["string"],
    "skillsGained": ["string"],
    "nextSteps": ["string"]
  },
  "keyPoints": [
    {"category": "string", "points": ["string"]}
  ],
  "analytics": {
    "timeSpentTotal": 0,
    "timeSpentLessons": 0,
    "timeSpentQuizzes": 0,
    "averageScore": 0,
    "totalQuizzes": 0,
    "passedQuizzes": 0,
    "grade": "EXCELLENT | GOOD | AVERAGE | NEEDS_IMPROVEMENT",
    "lessonsCompleted": 0,
    "quizzesCompleted": 0,
    "totalLessons": 0
  }
}`
)

// Syllabus builds the stage-1 prompt: a multi-lesson course outline for
// the requested topic.
func Syllabus(topic string, p *types.Personalization) string {
	var sb strings.Builder
	sb.WriteString(Format(MustGet("stages.json", "syllabus-intro"), map[string]string{"Topic": topic}))
	sb.WriteString("\n\n")
	sb.WriteString(renderPersonalization(p))
	sb.WriteString("\n")
	sb.WriteString(MustGet("stages.json", "syllabus-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(schemaBlock(syllabusShape))
	return sb.String()
}

// LessonContext builds the stage-2 prompt: objective and section plan
// for one syllabus lesson.
func LessonContext(topic string, p *types.Personalization, stub types.LessonStub) string {
	var sb strings.Builder
	sb.WriteString(Format(MustGet("stages.json", "lesson-context-intro"), map[string]string{
		"Lesson":   stub.Title,
		"Duration": stub.Duration,
		"Topic":    topic,
	}))
	sb.WriteString("\n\n")
	sb.WriteString(renderPersonalization(p))
	sb.WriteString("\n")
	sb.WriteString(MustGet("stages.json", "lesson-context-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(schemaBlock(lessonContextShape))
	return sb.String()
}

// SectionContent builds the stage-3 prompt: content blocks for every
// planned section of one lesson.
func SectionContent(topic string, p *types.Personalization, lesson types.LessonContext) string {
	var sb strings.Builder
	sb.WriteString(Format(MustGet("stages.json", "section-content-intro"), map[string]string{
		"Lesson":    lesson.Title,
		"Topic":     topic,
		"Objective": lesson.Objective,
	}))
	sb.WriteString("\n\nSections to cover, in order:\n")
	for i, sec := range lesson.Sections {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, sec.Title, sec.Description)
	}
	sb.WriteString("\n")
	sb.WriteString(renderPersonalization(p))
	sb.WriteString("\n")
	sb.WriteString(MustGet("stages.json", "section-content-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(schemaBlock(sectionContentShape))
	return sb.String()
}

// Quiz builds the stage-4 prompt: a quiz covering one lesson's content.
func Quiz(topic string, p *types.Personalization, lesson types.LessonContext, blocks []types.ContentBlock) string {
	var sb strings.Builder
	sb.WriteString(Format(MustGet("stages.json", "quiz-intro"), map[string]string{
		"Lesson":    lesson.Title,
		"Topic":     topic,
		"Objective": lesson.Objective,
	}))
	sb.WriteString("\n\nThe quiz must cover the following lesson material:\n")
	for _, b := range blocks {
		switch b.Type {
		case types.ContentText:
			fmt.Fprintf(&sb, "- %s\n", firstLine(b.Text))
		case types.ContentCode:
			fmt.Fprintf(&sb, "- code example: %s\n", firstLine(b.Code))
		case types.ContentMath:
			fmt.Fprintf(&sb, "- math: %s\n", firstLine(b.Math))
		case types.ContentGraph:
			if b.Graph != nil {
				fmt.Fprintf(&sb, "- graph: %s\n", b.Graph.Title)
			}
		}
	}
	sb.WriteString("\n")
	sb.WriteString(renderPersonalization(p))
	sb.WriteString("\n")
	sb.WriteString(MustGet("stages.json", "quiz-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(schemaBlock(quizShape))
	return sb.String()
}

// PostCourse builds the stage-5 prompt: summary, key points and
// projected analytics for the completed course.
func PostCourse(topic string, p *types.Personalization, syllabus types.Syllabus, lessons []types.LessonRecord) string {
	var sb strings.Builder
	sb.WriteString(Format(MustGet("stages.json", "post-course-intro"), map[string]string{
		"Title": syllabus.Title,
		"Topic": topic,
	}))
	sb.WriteString("\n\nLessons covered:\n")
	for i, l := range lessons {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, l.LessonTitle, l.LessonDuration)
	}
	sb.WriteString("\n")
	sb.WriteString(renderPersonalization(p))
	sb.WriteString("\n")
	sb.WriteString(MustGet("stages.json", "post-course-instructions"))
	sb.WriteString("\n\n")
	sb.WriteString(schemaBlock(postCourseShape))
	return sb.String()
}

// firstLine truncates block payloads to their first line for quiz
// coverage listings.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	const max = 160
	if len(s) > max {
		s = s[:max]
	}
	return s
}
