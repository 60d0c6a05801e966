package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/course-generator/internal/generate"
	"github.com/jonathan/course-generator/internal/llm"
	"github.com/jonathan/course-generator/internal/observability"
	"github.com/jonathan/course-generator/internal/prompts"
	"github.com/jonathan/course-generator/internal/repair"
	"github.com/jonathan/course-generator/internal/schemas"
	"github.com/jonathan/course-generator/internal/types"
)

// Store is the persistence collaborator: it accepts the fully assembled
// course graph and performs one atomic-from-the-caller's-perspective
// create, returning the persisted course id.
type Store interface {
	CreateCourse(ctx context.Context, graph *types.CourseGraph) (uuid.UUID, error)
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Request     types.GenerationRequest
	Backend     generate.Backend
	Store       Store
	MaxAttempts int           // generation attempts per stage call; defaults to 3
	BaseDelay   time.Duration // linear backoff unit between attempts; defaults to 1s
	OnProgress  ProgressCallback
	OnNotice    NoticeCallback
	Verbose     bool
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}

// emitNotice calls the notice callback if configured
func emitNotice(opts *RunOptions, format string, args ...any) {
	if opts.OnNotice != nil {
		opts.OnNotice(fmt.Sprintf(format, args...))
	}
}

// Run executes one full generation run: request validation, the staged
// generation sequence, and the persistence handoff. Stages and lessons
// execute strictly in order because each stage's prompt is built from
// earlier stage outputs. Any stage failure aborts the run; completed
// work is discarded, never partially persisted. Returns the persisted
// course id on success.
func Run(ctx context.Context, opts RunOptions) (uuid.UUID, error) {
	if err := opts.Request.Validate(); err != nil {
		return uuid.Nil, err
	}

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}

	printer := observability.NewPrinter(os.Stdout)
	gen := generate.New(opts.Backend, opts.MaxAttempts, opts.BaseDelay)
	topic := opts.Request.Topic
	personalization := opts.Request.Personalization

	// Stage 1: syllabus.
	emitProgress(&opts, ProgressEvent{Step: StepSyllabus, Status: StatusStarted})
	raw, err := gen.Generate(ctx, prompts.Syllabus(topic, personalization), llm.TierStandard)
	if err != nil {
		return uuid.Nil, fmt.Errorf("syllabus generation failed: %w", err)
	}
	syllabus, err := schemas.DecodeSyllabus(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if len(syllabus.Lessons) == 0 {
		return uuid.Nil, fmt.Errorf("pipeline fault: syllabus contains no lessons")
	}
	if opts.Verbose {
		printer.PrintSyllabus(syllabus)
	}
	emitProgress(&opts, ProgressEvent{Step: StepSyllabus, Status: StatusCompleted, Content: syllabus})

	lessonBudget, quizBudget := TimeBudgets(timeCommitment(personalization), len(syllabus.Lessons))
	emitNotice(&opts, "Planned %d lessons (%.0f min content + %.0f min quiz each)",
		len(syllabus.Lessons), lessonBudget, quizBudget)

	// Stage 2-4: the per-lesson loop, strictly sequential.
	lessons := make([]types.LessonRecord, 0, len(syllabus.Lessons))
	for i, stub := range syllabus.Lessons {
		if err := ctx.Err(); err != nil {
			return uuid.Nil, err
		}

		emitProgress(&opts, ProgressEvent{Step: StepLesson, Status: StatusStarted,
			Message: fmt.Sprintf("Lesson %d/%d: %s", i+1, len(syllabus.Lessons), stub.Title)})

		record, err := runLesson(ctx, &opts, gen, printer, topic, stub)
		if err != nil {
			return uuid.Nil, fmt.Errorf("lesson %d (%s) failed: %w", i+1, stub.Title, err)
		}
		lessons = append(lessons, *record)

		emitProgress(&opts, ProgressEvent{Step: StepLesson, Status: StatusCompleted, Message: stub.Title})
	}

	// Stage 5: post-course artifacts.
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	emitNotice(&opts, "Generating course summary and analytics")
	raw, err = gen.Generate(ctx, prompts.PostCourse(topic, personalization, *syllabus, lessons), llm.TierLite)
	if err != nil {
		return uuid.Nil, fmt.Errorf("post-course generation failed: %w", err)
	}
	post, err := schemas.DecodePostCourse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	for _, fix := range repair.Analytics(&post.Analytics, len(lessons)) {
		emitNotice(&opts, "Repaired analytics: %s", fix)
	}
	if opts.Verbose {
		printer.PrintAnalytics(&post.Analytics)
	}

	graph := &types.CourseGraph{
		Topic:                   topic,
		UserID:                  opts.Request.UserID,
		Title:                   syllabus.Title,
		Description:             syllabus.Description,
		Status:                  types.CourseStatusActive,
		LessonTimeBudgetMinutes: lessonBudget,
		QuizTimeBudgetMinutes:   quizBudget,
		Lessons:                 lessons,
		Post:                    *post,
	}

	// Persist the assembled graph exactly once.
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	emitNotice(&opts, "Persisting course")
	courseID, err := opts.Store.CreateCourse(ctx, graph)
	if err != nil {
		return uuid.Nil, err
	}

	return courseID, nil
}

// runLesson executes one lesson's three sub-stages in order: context,
// section content, quiz. Planning runs on the standard tier; content and
// quiz writing need the advanced one.
func runLesson(ctx context.Context, opts *RunOptions, gen *generate.Generator, printer *observability.Printer, topic string, stub types.LessonStub) (*types.LessonRecord, error) {
	personalization := opts.Request.Personalization

	raw, err := gen.Generate(ctx, prompts.LessonContext(topic, personalization, stub), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("lesson context generation failed: %w", err)
	}
	lessonCtx, err := schemas.DecodeLessonContext(raw)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintLessonContext(lessonCtx)
	}
	emitNotice(opts, "Planned %d sections for %q", len(lessonCtx.Sections), stub.Title)

	raw, err = gen.Generate(ctx, prompts.SectionContent(topic, personalization, *lessonCtx), llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("section content generation failed: %w", err)
	}
	content, err := schemas.DecodeSectionContent(raw)
	if err != nil {
		return nil, err
	}
	blocks, err := flattenBlocks(opts, content.Sections)
	if err != nil {
		return nil, err
	}

	emitProgress(opts, ProgressEvent{Step: StepQuiz, Status: StatusStarted, Message: stub.Title})
	raw, err = gen.Generate(ctx, prompts.Quiz(topic, personalization, *lessonCtx, blocks), llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}
	quiz, err := schemas.DecodeQuiz(raw)
	if err != nil {
		return nil, err
	}
	for _, fix := range repair.Quiz(quiz) {
		emitNotice(opts, "Repaired quiz %q: %s", quiz.Title, fix)
	}
	if opts.Verbose {
		printer.PrintQuiz(quiz)
	}
	emitProgress(opts, ProgressEvent{Step: StepQuiz, Status: StatusCompleted, Content: quiz})

	return &types.LessonRecord{
		LessonTitle:    stub.Title,
		LessonDuration: stub.Duration,
		Context:        *lessonCtx,
		ContentBlocks:  blocks,
		Quiz:           *quiz,
	}, nil
}

// flattenBlocks flattens every section's blocks into one ordered
// sequence for the lesson, assigning a dense 1-based order and a fresh
// unique id per block. Order hints in raw model output are ignored.
// Each block is emitted to the progress channel as it is produced.
func flattenBlocks(opts *RunOptions, sections []types.SectionContent) ([]types.ContentBlock, error) {
	var blocks []types.ContentBlock
	order := 1
	for _, section := range sections {
		for _, block := range section.Blocks {
			block.ID = uuid.NewString()
			block.Order = order
			if !block.PayloadMatchesType() {
				return nil, fmt.Errorf("content block %d: payload does not match type %s", order, block.Type)
			}
			blocks = append(blocks, block)
			emitProgress(opts, ProgressEvent{Step: StepContentBlock, Status: StatusCompleted, Content: block})
			order++
		}
	}
	return blocks, nil
}

func timeCommitment(p *types.Personalization) string {
	if p == nil {
		return ""
	}
	return p.TimeCommitment
}
