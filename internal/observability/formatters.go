// Package observability provides formatted output utilities for verbose operator logs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/course-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSyllabus outputs a human-readable summary of the generated syllabus.
func (p *Printer) PrintSyllabus(syllabus *types.Syllabus) {
	if syllabus == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", syllabus.Title))
	sb.WriteString(fmt.Sprintf("Lessons: %d\n", len(syllabus.Lessons)))
	sb.WriteString("\n")

	for i, lesson := range syllabus.Lessons {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(syllabus.Lessons)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, lesson.Title, lesson.Duration))
	}

	p.printBox("Syllabus", sb.String())
}

// PrintLessonContext outputs a human-readable summary of one lesson plan.
func (p *Printer) PrintLessonContext(lessonCtx *types.LessonContext) {
	if lessonCtx == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Objective: %s\n", lessonCtx.Objective))
	sb.WriteString("\n")
	for i, sec := range lessonCtx.Sections {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, sec.Title))
	}

	p.printBox(fmt.Sprintf("Lesson: %s", lessonCtx.Title), sb.String())
}

// PrintQuiz outputs a human-readable summary of a generated quiz.
func (p *Printer) PrintQuiz(quiz *types.Quiz) {
	if quiz == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Questions: %d\n", len(quiz.Questions)))
	sb.WriteString(fmt.Sprintf("Marks: %d (pass at %d)\n", quiz.TotalMarks, quiz.PassingMarks))

	counts := make(map[types.QuestionType]int)
	for _, q := range quiz.Questions {
		counts[q.Type]++
	}
	for _, qt := range []types.QuestionType{types.QuestionMCQ, types.QuestionMultipleSelect, types.QuestionTrueFalse, types.QuestionDescriptive} {
		if counts[qt] > 0 {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", qt, counts[qt]))
		}
	}

	p.printBox(fmt.Sprintf("Quiz: %s", quiz.Title), sb.String())
}

// PrintAnalytics outputs a human-readable summary of course analytics.
func (p *Printer) PrintAnalytics(a *types.Analytics) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Average score: %.1f (%s)\n", a.AverageScore, a.Grade))
	sb.WriteString(fmt.Sprintf("Time: %.0f min total (%.0f lessons, %.0f quizzes)\n",
		a.TimeSpentTotal, a.TimeSpentLessons, a.TimeSpentQuizzes))
	sb.WriteString(fmt.Sprintf("Quizzes: %d/%d passed\n", a.PassedQuizzes, a.TotalQuizzes))

	p.printBox("Analytics", sb.String())
}
