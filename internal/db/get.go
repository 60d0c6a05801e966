package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/course-generator/internal/types"
)

// GetCourse reassembles a persisted course graph. Returns nil with no
// error when the course does not exist.
func (db *DB) GetCourse(ctx context.Context, courseID uuid.UUID) (*types.CourseGraph, error) {
	var graph types.CourseGraph
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, topic, title, description, status, lesson_time_budget, quiz_time_budget
		 FROM courses WHERE id = $1`,
		courseID,
	).Scan(&graph.UserID, &graph.Topic, &graph.Title, &graph.Description,
		&graph.Status, &graph.LessonTimeBudgetMinutes, &graph.QuizTimeBudgetMinutes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := db.getLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	graph.Lessons = lessons

	post, err := db.getPostCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	graph.Post = *post

	return &graph, nil
}

func (db *DB) getLessons(ctx context.Context, courseID uuid.UUID) ([]types.LessonRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, duration, objective FROM lessons
		 WHERE course_id = $1 ORDER BY position`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	defer rows.Close()

	var lessons []types.LessonRecord
	var lessonIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var lesson types.LessonRecord
		if err := rows.Scan(&id, &lesson.LessonTitle, &lesson.LessonDuration, &lesson.Context.Objective); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.Context.Title = lesson.LessonTitle
		lessons = append(lessons, lesson)
		lessonIDs = append(lessonIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}

	for i, lessonID := range lessonIDs {
		if err := db.fillLesson(ctx, lessonID, &lessons[i]); err != nil {
			return nil, err
		}
	}
	return lessons, nil
}

func (db *DB) fillLesson(ctx context.Context, lessonID uuid.UUID, lesson *types.LessonRecord) error {
	sectionRows, err := db.pool.Query(ctx,
		`SELECT title, description FROM lesson_sections
		 WHERE lesson_id = $1 ORDER BY position`,
		lessonID,
	)
	if err != nil {
		return fmt.Errorf("failed to get sections: %w", err)
	}
	defer sectionRows.Close()
	for sectionRows.Next() {
		var section types.SectionStub
		if err := sectionRows.Scan(&section.Title, &section.Description); err != nil {
			return fmt.Errorf("failed to scan section: %w", err)
		}
		lesson.Context.Sections = append(lesson.Context.Sections, section)
	}
	if err := sectionRows.Err(); err != nil {
		return fmt.Errorf("failed to read sections: %w", err)
	}

	blockRows, err := db.pool.Query(ctx,
		`SELECT id, block_order, type, COALESCE(text, ''), COALESCE(code, ''), COALESCE(math, ''), graph
		 FROM content_blocks WHERE lesson_id = $1 ORDER BY block_order`,
		lessonID,
	)
	if err != nil {
		return fmt.Errorf("failed to get content blocks: %w", err)
	}
	defer blockRows.Close()
	for blockRows.Next() {
		var block types.ContentBlock
		var graphJSON []byte
		if err := blockRows.Scan(&block.ID, &block.Order, &block.Type,
			&block.Text, &block.Code, &block.Math, &graphJSON); err != nil {
			return fmt.Errorf("failed to scan content block: %w", err)
		}
		if len(graphJSON) > 0 {
			block.Graph = &types.GraphSpec{}
			if err := json.Unmarshal(graphJSON, block.Graph); err != nil {
				return fmt.Errorf("failed to decode graph block: %w", err)
			}
		}
		lesson.ContentBlocks = append(lesson.ContentBlocks, block)
	}
	if err := blockRows.Err(); err != nil {
		return fmt.Errorf("failed to read content blocks: %w", err)
	}

	var quizID uuid.UUID
	err = db.pool.QueryRow(ctx,
		`SELECT id, title, duration, total_marks, passing_marks FROM quizzes WHERE lesson_id = $1`,
		lessonID,
	).Scan(&quizID, &lesson.Quiz.Title, &lesson.Quiz.Duration,
		&lesson.Quiz.TotalMarks, &lesson.Quiz.PassingMarks)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	questionRows, err := db.pool.Query(ctx,
		`SELECT number, question, type, options, marks, correct_answers, COALESCE(explanation, ''), COALESCE(rubric, '')
		 FROM quiz_questions WHERE quiz_id = $1 ORDER BY number`,
		quizID,
	)
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	defer questionRows.Close()
	for questionRows.Next() {
		var q types.Question
		if err := questionRows.Scan(&q.Number, &q.Question, &q.Type,
			&q.Options, &q.Marks, &q.CorrectAnswers, &q.Explanation, &q.Rubric); err != nil {
			return fmt.Errorf("failed to scan question: %w", err)
		}
		lesson.Quiz.Questions = append(lesson.Quiz.Questions, q)
	}
	return questionRows.Err()
}

func (db *DB) getPostCourse(ctx context.Context, courseID uuid.UUID) (*types.PostCourseArtifacts, error) {
	var post types.PostCourseArtifacts
	err := db.pool.QueryRow(ctx,
		`SELECT overview, what_you_learned, skills_gained, next_steps
		 FROM course_summaries WHERE course_id = $1`,
		courseID,
	).Scan(&post.Summary.Overview, &post.Summary.WhatYouLearned,
		&post.Summary.SkillsGained, &post.Summary.NextSteps)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT category, points FROM key_points WHERE course_id = $1 ORDER BY position`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get key points: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var group types.KeyPointGroup
		if err := rows.Scan(&group.Category, &group.Points); err != nil {
			return nil, fmt.Errorf("failed to scan key points: %w", err)
		}
		post.KeyPoints = append(post.KeyPoints, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key points: %w", err)
	}

	a := &post.Analytics
	err = db.pool.QueryRow(ctx,
		`SELECT time_spent_total, time_spent_lessons, time_spent_quizzes, average_score,
		 total_quizzes, passed_quizzes, grade, lessons_completed, quizzes_completed, total_lessons
		 FROM course_analytics WHERE course_id = $1`,
		courseID,
	).Scan(&a.TimeSpentTotal, &a.TimeSpentLessons, &a.TimeSpentQuizzes, &a.AverageScore,
		&a.TotalQuizzes, &a.PassedQuizzes, &a.Grade, &a.LessonsCompleted, &a.QuizzesCompleted, &a.TotalLessons)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}

	return &post, nil
}
