// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ckchivatsi/opinion-court/models"
)

// ErrNotFound is returned when a question or choice does not exist, or the
// question is not visible to visitors.
var ErrNotFound = errors.New("not found")

// hasChoices restricts a query on question to rows with at least one choice
const hasChoices = `EXISTS (SELECT 1 FROM choice WHERE choice.question_id = question.id)`

// PublishedQuestions returns up to limit questions with pub_date <= now and
// at least one choice, most recent first. Ties keep insertion order.
func PublishedQuestions(ctx context.Context, db *sql.DB, now time.Time, limit int) ([]models.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE pub_date <= $1 AND `+hasChoices+`
		ORDER BY pub_date DESC, id ASC
		LIMIT $2
	`, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.PubDate = q.PubDate.UTC()
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// GetQuestion fetches a question by id regardless of its publish date.
func GetQuestion(ctx context.Context, db *sql.DB, id int64) (models.Question, error) {
	var q models.Question
	err := db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`, id).Scan(&q.ID, &q.QuestionText, &q.PubDate)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question %d: %w", id, err)
	}

	q.PubDate = q.PubDate.UTC()
	return q, nil
}

// GetPublishedQuestion fetches a question the way visitors see it. Questions
// published after now or without choices report ErrNotFound.
func GetPublishedQuestion(ctx context.Context, db *sql.DB, id int64, now time.Time) (models.Question, error) {
	var q models.Question
	err := db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1 AND pub_date <= $2 AND `+hasChoices,
		id, now.UTC(),
	).Scan(&q.ID, &q.QuestionText, &q.PubDate)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question %d: %w", id, err)
	}

	q.PubDate = q.PubDate.UTC()
	return q, nil
}

// ListChoices returns the choices of a question in creation order.
func ListChoices(ctx context.Context, db *sql.DB, questionID int64) ([]models.Choice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choices: %w", err)
	}

	return choices, nil
}

// IncrementVote adds one vote to a choice of the given question. The update
// is a single statement, so concurrent votes are never lost.
func IncrementVote(ctx context.Context, db *sql.DB, questionID, choiceID int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE choice
		SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("choice %d of question %d: %w", choiceID, questionID, ErrNotFound)
	}

	return nil
}

// CreateQuestion inserts a question and returns its id.
func CreateQuestion(ctx context.Context, db *sql.DB, text string, pubDate time.Time) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO question (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`, text, pubDate.UTC()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return id, nil
}

// AddChoice inserts a choice with zero votes and returns its id.
func AddChoice(ctx context.Context, db *sql.DB, questionID int64, text string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO choice (question_id, choice_text, votes)
		VALUES ($1, $2, 0)
		RETURNING id
	`, questionID, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert choice: %w", err)
	}
	return id, nil
}
