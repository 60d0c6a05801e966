package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/course-generator/internal/types"
)

func TestSyllabus_ContainsTopicAndProfile(t *testing.T) {
	p := &types.Personalization{
		Level:          "beginner",
		Goal:           "switch careers",
		TimeCommitment: "10",
	}

	prompt := Syllabus("Linear Algebra", p)

	assert.Contains(t, prompt, `"Linear Algebra"`)
	assert.Contains(t, prompt, "beginner")
	assert.Contains(t, prompt, "switch careers")
	assert.Contains(t, prompt, "Return ONLY valid JSON")
}

func TestSyllabus_NilPersonalizationUsesPlaceholders(t *testing.T) {
	prompt := Syllabus("Linear Algebra", nil)

	assert.Contains(t, prompt, "Not specified")
	// Every profile line is filled; none is left blank.
	for _, line := range strings.Split(prompt, "\n") {
		trimmed := strings.TrimSpace(line)
		assert.False(t, strings.HasSuffix(trimmed, ":") && strings.HasPrefix(trimmed, "- "),
			"profile line left blank: %q", line)
	}
}

func TestSyllabus_EmptyFieldsUsePlaceholders(t *testing.T) {
	p := &types.Personalization{Level: "advanced"} // everything else unset

	prompt := Syllabus("Compilers", p)

	assert.Contains(t, prompt, "- Level: advanced")
	assert.Contains(t, prompt, "- Goal: Not specified")
	assert.Contains(t, prompt, "- Learning style: Not specified")
}

func TestLessonContext_EmbedsStub(t *testing.T) {
	stub := types.LessonStub{Title: "Recursion", Duration: "45 minutes"}

	prompt := LessonContext("Algorithms", nil, stub)

	assert.Contains(t, prompt, `"Recursion"`)
	assert.Contains(t, prompt, "45 minutes")
	assert.Contains(t, prompt, `"Algorithms"`)
}

func TestSectionContent_ListsSectionsInOrder(t *testing.T) {
	lesson := types.LessonContext{
		Title:     "Recursion",
		Objective: "Understand recursive decomposition",
		Sections: []types.SectionStub{
			{Title: "Base cases", Description: "why they terminate"},
			{Title: "Call stacks", Description: "how frames accumulate"},
		},
	}

	prompt := SectionContent("Algorithms", nil, lesson)

	first := strings.Index(prompt, "1. Base cases")
	second := strings.Index(prompt, "2. Call stacks")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)
	assert.Contains(t, prompt, "exactly one payload field")
}

func TestQuiz_SummarizesBlockMaterial(t *testing.T) {
	lesson := types.LessonContext{Title: "Recursion", Objective: "obj"}
	blocks := []types.ContentBlock{
		{Type: types.ContentText, Text: "Recursion solves problems by self-reference.\nMore detail follows."},
		{Type: types.ContentCode, Code: "func fib(n int) int { ... }"},
		{Type: types.ContentGraph, Graph: &types.GraphSpec{Title: "Call depth growth"}},
	}

	prompt := Quiz("Algorithms", nil, lesson, blocks)

	assert.Contains(t, prompt, "Recursion solves problems by self-reference.")
	assert.NotContains(t, prompt, "More detail follows")
	assert.Contains(t, prompt, "code example: func fib(n int) int { ... }")
	assert.Contains(t, prompt, "graph: Call depth growth")
}

func TestPostCourse_ListsLessons(t *testing.T) {
	syllabus := types.Syllabus{Title: "Algorithms from Scratch"}
	lessons := []types.LessonRecord{
		{LessonTitle: "Recursion", LessonDuration: "45 minutes"},
		{LessonTitle: "Sorting", LessonDuration: "1 hour"},
	}

	prompt := PostCourse("Algorithms", nil, syllabus, lessons)

	assert.Contains(t, prompt, "1. Recursion (45 minutes)")
	assert.Contains(t, prompt, "2. Sorting (1 hour)")
	assert.Contains(t, prompt, "timeSpentTotal must equal timeSpentLessons plus timeSpentQuizzes")
}

func TestStagePrompts_AreDeterministic(t *testing.T) {
	p := &types.Personalization{Level: "beginner"}

	a := Syllabus("Go", p)
	b := Syllabus("Go", p)
	assert.Equal(t, a, b)
}
