package pipeline

import (
	"strconv"
	"strings"
)

// parseHours reads the free-text hour count from a personalization time
// commitment. Unset or unparseable values yield 0.
func parseHours(timeCommitment string) float64 {
	trimmed := strings.TrimSpace(timeCommitment)
	if trimmed == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || hours < 0 {
		return 0
	}
	return hours
}

// TimeBudgets derives the uniform per-lesson time allocations from the
// learner's stated commitment: 80% of the total minutes go to lesson
// content and 20% to quizzes, split evenly across lessons regardless of
// each lesson's own declared duration text. lessonCount must be > 0.
func TimeBudgets(timeCommitment string, lessonCount int) (lessonBudget, quizBudget float64) {
	totalMinutes := parseHours(timeCommitment) * 60
	lessonBudget = totalMinutes * 0.8 / float64(lessonCount)
	quizBudget = totalMinutes * 0.2 / float64(lessonCount)
	return lessonBudget, quizBudget
}
