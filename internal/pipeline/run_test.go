package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/types"
)

const (
	testSyllabus = `{
		"title": "Go from Scratch",
		"description": "A gentle introduction",
		"lessons": [
			{"title": "Basics", "duration": "45 minutes"},
			{"title": "Functions", "duration": "45 minutes"},
			{"title": "Concurrency", "duration": "1 hour"}
		]
	}`

	testLessonContext = `{
		"title": "Basics",
		"objective": "Read and write simple programs",
		"sections": [
			{"title": "Variables", "description": "declaration and zero values"},
			{"title": "Control flow", "description": "if, for, switch"}
		]
	}`

	testSectionContent = `{
		"sections": [
			{"title": "Variables", "blocks": [
				{"type": "TEXT", "text": "Variables hold values.", "order": 99},
				{"type": "CODE", "code": "var x int"}
			]},
			{"title": "Control flow", "blocks": [
				{"type": "TEXT", "text": "Go has one loop keyword."}
			]}
		]
	}`

	testQuiz = `{
		"title": "Checkpoint",
		"duration": "10 minutes",
		"totalMarks": 4,
		"passingMarks": 2,
		"questions": [
			{"number": 1, "question": "2+2?", "type": "MCQ",
			 "options": ["3", "4"], "marks": 2, "correctAnswers": ["4"]},
			{"number": 2, "question": "Go has generics", "type": "TRUE_FALSE",
			 "options": ["true", "false"], "marks": 2, "correctAnswers": ["true"]}
		]
	}`

	testPostCourse = `{
		"summary": {
			"overview": "A compact tour of Go",
			"whatYouLearned": ["syntax"],
			"skillsGained": ["writing CLIs"],
			"nextSteps": ["read the standard library"]
		},
		"keyPoints": [{"category": "Syntax", "points": ["zero values"]}],
		"analytics": {
			"timeSpentTotal": 600, "timeSpentLessons": 480, "timeSpentQuizzes": 120,
			"averageScore": 88, "totalQuizzes": 3, "passedQuizzes": 3,
			"grade": "EXCELLENT", "lessonsCompleted": 3, "quizzesCompleted": 3, "totalLessons": 3
		}
	}`
)

// stageBackend answers each prompt with the canned artifact for the
// stage the prompt belongs to, identified by its intro text. The tier
// each stage asked for is recorded per stage name.
type stageBackend struct {
	calls     int
	quizCalls int
	failQuizN int // quiz call number to fail on (0 = never)
	tiers     map[string]llm.ModelTier
}

func (b *stageBackend) record(stage string, tier llm.ModelTier) {
	if b.tiers == nil {
		b.tiers = make(map[string]llm.ModelTier)
	}
	b.tiers[stage] = tier
}

func (b *stageBackend) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	b.calls++
	switch {
	case strings.Contains(prompt, "course syllabus"):
		b.record("syllabus", tier)
		return testSyllabus, nil
	case strings.Contains(prompt, "Plan the lesson"):
		b.record("lessonContext", tier)
		return testLessonContext, nil
	case strings.Contains(prompt, "Write the full content"):
		b.record("sectionContent", tier)
		return testSectionContent, nil
	case strings.Contains(prompt, "Create a quiz"):
		b.record("quiz", tier)
		b.quizCalls++
		if b.failQuizN != 0 && b.quizCalls == b.failQuizN {
			return "this is not json", nil
		}
		return testQuiz, nil
	case strings.Contains(prompt, "Summarize the completed course"):
		b.record("postCourse", tier)
		return testPostCourse, nil
	default:
		return "", nil
	}
}

// recordingStore captures the graph handed to persistence.
type recordingStore struct {
	graph *types.CourseGraph
	calls int
}

func (s *recordingStore) CreateCourse(_ context.Context, graph *types.CourseGraph) (uuid.UUID, error) {
	s.calls++
	s.graph = graph
	return uuid.MustParse("11111111-2222-3333-4444-555555555555"), nil
}

func validRequest() types.GenerationRequest {
	return types.GenerationRequest{
		Topic:  "Go",
		UserID: "user-1",
		Personalization: &types.Personalization{
			Level:          "beginner",
			TimeCommitment: "10",
		},
	}
}

func TestRun_HappyPath(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}
	var events []ProgressEvent
	var notices []string

	courseID, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		OnProgress:  func(e ProgressEvent) { events = append(events, e) },
		OnNotice:    func(m string) { notices = append(notices, m) },
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", courseID.String())

	// Persistence happens exactly once, with the full graph.
	require.Equal(t, 1, store.calls)
	graph := store.graph
	assert.Equal(t, "Go from Scratch", graph.Title)
	assert.Equal(t, "user-1", graph.UserID)
	assert.Equal(t, types.CourseStatusActive, graph.Status)
	require.Len(t, graph.Lessons, 3)

	// 10 hours over 3 lessons: 160 min content, 40 min quiz each.
	assert.InDelta(t, 160, graph.LessonTimeBudgetMinutes, 1e-9)
	assert.InDelta(t, 40, graph.QuizTimeBudgetMinutes, 1e-9)

	// Post-course analytics survived intact (already consistent).
	assert.Equal(t, types.GradeExcellent, graph.Post.Analytics.Grade)
	assert.Equal(t, 3, graph.Post.Analytics.TotalLessons)

	// 1 syllabus + 3 * (context + content + quiz) + 1 post-course.
	assert.Equal(t, 11, backend.calls)
	assert.NotEmpty(t, notices)

	// No terminal event from the pipeline itself.
	for _, e := range events {
		assert.NotEqual(t, StepCompleted, e.Step)
		assert.NotEqual(t, StepError, e.Step)
	}
}

func TestRun_FlattensBlocksWithDenseOrder(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}

	_, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, lesson := range store.graph.Lessons {
		require.Len(t, lesson.ContentBlocks, 3, "two sections flatten to three blocks")
		for i, block := range lesson.ContentBlocks {
			// Dense 1-based order; the raw order hint (99) is discarded.
			assert.Equal(t, i+1, block.Order)
			assert.True(t, block.PayloadMatchesType())

			require.NotEmpty(t, block.ID)
			assert.False(t, seen[block.ID], "block ids must be unique across the course")
			seen[block.ID] = true
		}
	}
}

func TestRun_EmitsBlockAndQuizEvents(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}
	counts := make(map[string]int)

	_, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		OnProgress:  func(e ProgressEvent) { counts[e.Step+"/"+e.Status]++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 1, counts[StepSyllabus+"/"+StatusStarted])
	assert.Equal(t, 1, counts[StepSyllabus+"/"+StatusCompleted])
	assert.Equal(t, 3, counts[StepLesson+"/"+StatusStarted])
	assert.Equal(t, 3, counts[StepLesson+"/"+StatusCompleted])
	assert.Equal(t, 9, counts[StepContentBlock+"/"+StatusCompleted], "3 blocks per lesson")
	assert.Equal(t, 3, counts[StepQuiz+"/"+StatusStarted])
	assert.Equal(t, 3, counts[StepQuiz+"/"+StatusCompleted])
}

func TestRun_SelectsTierPerStage(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}

	_, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
	})
	require.NoError(t, err)

	// Planning stages run standard, authoring stages advanced, and the
	// post-course summary runs lite.
	assert.Equal(t, llm.TierStandard, backend.tiers["syllabus"])
	assert.Equal(t, llm.TierStandard, backend.tiers["lessonContext"])
	assert.Equal(t, llm.TierAdvanced, backend.tiers["sectionContent"])
	assert.Equal(t, llm.TierAdvanced, backend.tiers["quiz"])
	assert.Equal(t, llm.TierLite, backend.tiers["postCourse"])
}

func TestRun_QuizFailureAbortsWithoutPersisting(t *testing.T) {
	backend := &stageBackend{failQuizN: 2}
	store := &recordingStore{}

	_, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lesson 2")
	assert.Equal(t, 0, store.calls, "partial courses are never persisted")
}

func TestRun_InvalidRequestMakesNoBackendCalls(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}

	_, err := Run(context.Background(), RunOptions{
		Request: types.GenerationRequest{Topic: "Go"}, // no user id
		Backend: backend,
		Store:   store,
	})

	var validationErr *types.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, backend.calls)
	assert.Equal(t, 0, store.calls)
}

func TestRun_CancelledContextAborts(t *testing.T) {
	backend := &stageBackend{}
	store := &recordingStore{}

	ctx, cancel := context.WithCancel(context.Background())

	_, err := Run(ctx, RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		OnProgress: func(e ProgressEvent) {
			// Client disconnects right after the syllabus lands.
			if e.Step == StepSyllabus && e.Status == StatusCompleted {
				cancel()
			}
		},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.calls)
}

func TestRun_RepairsInconsistentAnalytics(t *testing.T) {
	backend := &inconsistentAnalyticsBackend{inner: &stageBackend{}}
	store := &recordingStore{}
	var notices []string

	_, err := Run(context.Background(), RunOptions{
		Request:     validRequest(),
		Backend:     backend,
		Store:       store,
		MaxAttempts: 1,
		BaseDelay:   time.Millisecond,
		OnNotice:    func(m string) { notices = append(notices, m) },
	})
	require.NoError(t, err)

	a := store.graph.Post.Analytics
	assert.InDelta(t, 600, a.TimeSpentTotal, 1e-9, "recomputed from lessons + quizzes")
	assert.Equal(t, 3, a.TotalLessons)
	assert.Equal(t, types.GradeNeedsImprovement, a.Grade, "grade forced to match score 42")

	repaired := false
	for _, n := range notices {
		if strings.Contains(n, "Repaired analytics") {
			repaired = true
		}
	}
	assert.True(t, repaired)
}

// inconsistentAnalyticsBackend rewrites the post-course stage with
// self-contradictory analytics.
type inconsistentAnalyticsBackend struct {
	inner *stageBackend
}

func (b *inconsistentAnalyticsBackend) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if strings.Contains(prompt, "Summarize the completed course") {
		return `{
			"summary": {"overview": "o", "whatYouLearned": [], "skillsGained": [], "nextSteps": []},
			"keyPoints": [],
			"analytics": {
				"timeSpentTotal": 50, "timeSpentLessons": 480, "timeSpentQuizzes": 120,
				"averageScore": 42, "totalQuizzes": 3, "passedQuizzes": 1,
				"grade": "GOOD", "lessonsCompleted": 3, "quizzesCompleted": 3, "totalLessons": 7
			}
		}`, nil
	}
	return b.inner.GenerateContent(ctx, prompt, tier)
}
