// Package db provides PostgreSQL persistence for assembled course graphs.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/course-generator/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateCourse writes a fully assembled course graph in one transaction:
// the course row, its ordered lessons with sections, content blocks and
// quiz, and the course-level summary, key points and analytics. Either
// the whole graph is written or nothing is.
func (db *DB) CreateCourse(ctx context.Context, graph *types.CourseGraph) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "begin", Cause: err}
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var courseID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO courses (user_id, topic, title, description, status, lesson_time_budget, quiz_time_budget)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		graph.UserID, graph.Topic, graph.Title, graph.Description, graph.Status,
		graph.LessonTimeBudgetMinutes, graph.QuizTimeBudgetMinutes,
	).Scan(&courseID)
	if err != nil {
		return uuid.Nil, &PersistenceError{Op: "insert course", Cause: err}
	}

	for i, lesson := range graph.Lessons {
		if err := db.createLesson(ctx, tx, courseID, i+1, &lesson); err != nil {
			return uuid.Nil, err
		}
	}

	if err := db.createPostCourse(ctx, tx, courseID, &graph.Post); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, &PersistenceError{Op: "commit", Cause: err}
	}
	return courseID, nil
}

func (db *DB) createLesson(ctx context.Context, tx pgx.Tx, courseID uuid.UUID, position int, lesson *types.LessonRecord) error {
	var lessonID uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO lessons (course_id, position, title, duration, objective)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		courseID, position, lesson.LessonTitle, lesson.LessonDuration, lesson.Context.Objective,
	).Scan(&lessonID)
	if err != nil {
		return &PersistenceError{Op: fmt.Sprintf("insert lesson %d", position), Cause: err}
	}

	for i, section := range lesson.Context.Sections {
		_, err := tx.Exec(ctx,
			`INSERT INTO lesson_sections (lesson_id, position, title, description)
			 VALUES ($1, $2, $3, $4)`,
			lessonID, i+1, section.Title, section.Description,
		)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert section %d of lesson %d", i+1, position), Cause: err}
		}
	}

	for _, block := range lesson.ContentBlocks {
		var graphJSON []byte
		if block.Graph != nil {
			graphJSON, err = json.Marshal(block.Graph)
			if err != nil {
				return &PersistenceError{Op: fmt.Sprintf("marshal graph block %d", block.Order), Cause: err}
			}
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO content_blocks (id, lesson_id, block_order, type, text, code, math, graph)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)`,
			block.ID, lessonID, block.Order, block.Type, block.Text, block.Code, block.Math, graphJSON,
		)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert content block %d of lesson %d", block.Order, position), Cause: err}
		}
	}

	var quizID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (lesson_id, title, duration, total_marks, passing_marks, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		lessonID, lesson.Quiz.Title, lesson.Quiz.Duration, lesson.Quiz.TotalMarks,
		lesson.Quiz.PassingMarks, types.QuizStatusPending,
	).Scan(&quizID)
	if err != nil {
		return &PersistenceError{Op: fmt.Sprintf("insert quiz of lesson %d", position), Cause: err}
	}

	for _, q := range lesson.Quiz.Questions {
		_, err := tx.Exec(ctx,
			`INSERT INTO quiz_questions (quiz_id, number, question, type, options, marks, correct_answers, explanation, rubric)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))`,
			quizID, q.Number, q.Question, q.Type, q.Options, q.Marks, q.CorrectAnswers, q.Explanation, q.Rubric,
		)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert question %d of lesson %d quiz", q.Number, position), Cause: err}
		}
	}

	return nil
}

func (db *DB) createPostCourse(ctx context.Context, tx pgx.Tx, courseID uuid.UUID, post *types.PostCourseArtifacts) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO course_summaries (course_id, overview, what_you_learned, skills_gained, next_steps)
		 VALUES ($1, $2, $3, $4, $5)`,
		courseID, post.Summary.Overview, post.Summary.WhatYouLearned,
		post.Summary.SkillsGained, post.Summary.NextSteps,
	)
	if err != nil {
		return &PersistenceError{Op: "insert summary", Cause: err}
	}

	for i, group := range post.KeyPoints {
		_, err := tx.Exec(ctx,
			`INSERT INTO key_points (course_id, position, category, points)
			 VALUES ($1, $2, $3, $4)`,
			courseID, i+1, group.Category, group.Points,
		)
		if err != nil {
			return &PersistenceError{Op: fmt.Sprintf("insert key points %d", i+1), Cause: err}
		}
	}

	a := post.Analytics
	_, err = tx.Exec(ctx,
		`INSERT INTO course_analytics (course_id, time_spent_total, time_spent_lessons, time_spent_quizzes,
		 average_score, total_quizzes, passed_quizzes, grade, lessons_completed, quizzes_completed, total_lessons)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		courseID, a.TimeSpentTotal, a.TimeSpentLessons, a.TimeSpentQuizzes,
		a.AverageScore, a.TotalQuizzes, a.PassedQuizzes, a.Grade,
		a.LessonsCompleted, a.QuizzesCompleted, a.TotalLessons,
	)
	if err != nil {
		return &PersistenceError{Op: "insert analytics", Cause: err}
	}

	return nil
}
