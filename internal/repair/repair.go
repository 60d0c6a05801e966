// Package repair enforces the numeric cross-field invariants that stage
// prompts ask the model for but that generation cannot guarantee. Each
// repair either recomputes a trivially derivable value or leaves the
// artifact untouched; repairs are reported back for operator logging.
package repair

import (
	"fmt"
	"math"

	"github.com/jonathan/course-generator/internal/types"
)

// Quiz repairs a generated quiz in place: question numbers become a
// dense 1-based sequence, totalMarks is recomputed from per-question
// marks, and passingMarks is clamped to totalMarks. Returns a
// description of every applied repair.
func Quiz(q *types.Quiz) []string {
	var fixes []string

	renumbered := false
	for i := range q.Questions {
		if q.Questions[i].Number != i+1 {
			q.Questions[i].Number = i + 1
			renumbered = true
		}
	}
	if renumbered {
		fixes = append(fixes, "renumbered questions to a dense 1-based sequence")
	}

	sum := 0
	for _, question := range q.Questions {
		sum += question.Marks
	}
	if q.TotalMarks != sum {
		fixes = append(fixes, fmt.Sprintf("recomputed totalMarks from question marks (%d -> %d)", q.TotalMarks, sum))
		q.TotalMarks = sum
	}

	if q.PassingMarks > q.TotalMarks {
		fixes = append(fixes, fmt.Sprintf("clamped passingMarks to totalMarks (%d -> %d)", q.PassingMarks, q.TotalMarks))
		q.PassingMarks = q.TotalMarks
	}

	return fixes
}

// Analytics repairs generated course analytics in place: timeSpentTotal
// is recomputed from its parts, totalLessons is pinned to the actual
// lesson count, and grade is forced into the fixed score banding.
func Analytics(a *types.Analytics, lessonCount int) []string {
	var fixes []string

	total := a.TimeSpentLessons + a.TimeSpentQuizzes
	if math.Abs(a.TimeSpentTotal-total) > 1e-9 {
		fixes = append(fixes, fmt.Sprintf("recomputed timeSpentTotal (%.1f -> %.1f)", a.TimeSpentTotal, total))
		a.TimeSpentTotal = total
	}

	if a.TotalLessons != lessonCount {
		fixes = append(fixes, fmt.Sprintf("corrected totalLessons (%d -> %d)", a.TotalLessons, lessonCount))
		a.TotalLessons = lessonCount
	}

	if want := GradeFor(a.AverageScore); a.Grade != want {
		fixes = append(fixes, fmt.Sprintf("corrected grade for averageScore %.1f (%s -> %s)", a.AverageScore, a.Grade, want))
		a.Grade = want
	}

	return fixes
}

// GradeFor maps an average score to its grade band:
// EXCELLENT >= 85, GOOD [70, 85), AVERAGE [50, 70),
// NEEDS_IMPROVEMENT < 50.
func GradeFor(score float64) types.Grade {
	switch {
	case score >= 85:
		return types.GradeExcellent
	case score >= 70:
		return types.GradeGood
	case score >= 50:
		return types.GradeAverage
	default:
		return types.GradeNeedsImprovement
	}
}
