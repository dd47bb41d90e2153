// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ledger stores questions asked in sessions.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

// Ledger stores questions. It never writes questions.likes; that counter
// belongs to the votes package.
type Ledger struct {
	q db.Querier
}

func New(q db.Querier) *Ledger {
	return &Ledger{q: q}
}

// NormalizeBody trims a question body and enforces 1-280 characters
// (runes, not bytes). The text is otherwise stored as sent.
func NormalizeBody(body string) (string, error) {
	clean := strings.TrimSpace(body)
	if clean == "" {
		return "", fmt.Errorf("%w: question body cannot be empty", models.ErrInvalidBody)
	}
	if utf8.RuneCountInString(clean) > models.MaxQuestionLength {
		return "", fmt.Errorf("%w: question exceeds %d characters", models.ErrInvalidBody, models.MaxQuestionLength)
	}
	return clean, nil
}

// ParseStatus validates an optional status filter. Empty means no filter.
func ParseStatus(status string) (string, error) {
	switch status {
	case "", models.QuestionPending, models.QuestionAnswered:
		return status, nil
	default:
		return "", fmt.Errorf("%w: status must be pending or answered", models.ErrInvalidBody)
	}
}

// Create inserts a pending question with zero likes. A nil author records
// an anonymous question.
func (l *Ledger) Create(ctx context.Context, sessionID int64, authorUserID *int64, body string) (models.Question, error) {
	clean, err := NormalizeBody(body)
	if err != nil {
		return models.Question{}, err
	}

	q := models.Question{
		SessionID:    sessionID,
		AuthorUserID: authorUserID,
		Body:         clean,
		Status:       models.QuestionPending,
		Likes:        0,
		CreatedAt:    db.Now(),
	}

	var author sql.NullInt64
	if authorUserID != nil {
		author = sql.NullInt64{Int64: *authorUserID, Valid: true}
	}

	err = l.q.QueryRowContext(ctx, `
		INSERT INTO questions (session_id, author_user_id, body, status, likes, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`, q.SessionID, author, q.Body, q.Status, q.CreatedAt).Scan(&q.ID)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	return q, nil
}

// CountPending counts the user's pending questions in the session. Using it
// to gate Create is check-then-act: two concurrent submissions from the
// same user can both pass the check.
func (l *Ledger) CountPending(ctx context.Context, sessionID, userID int64) (int, error) {
	var count int
	err := l.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM questions
		WHERE session_id = $1 AND author_user_id = $2 AND status = $3
	`, sessionID, userID, models.QuestionPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending questions: %w", err)
	}
	return count, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (models.Question, error) {
	var q models.Question
	var author sql.NullInt64
	var answeredAt sql.NullTime
	err := l.q.QueryRowContext(ctx, `
		SELECT id, session_id, author_user_id, body, status, likes, created_at, answered_at
		FROM questions
		WHERE id = $1
	`, id).Scan(&q.ID, &q.SessionID, &author, &q.Body, &q.Status, &q.Likes, &q.CreatedAt, &answeredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, models.ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question %d: %w", id, err)
	}
	if author.Valid {
		q.AuthorUserID = &author.Int64
	}
	if answeredAt.Valid {
		q.AnsweredAt = &answeredAt.Time
	}
	return q, nil
}

// List returns the session's questions newest first with their authors.
// status restricts the result to pending or answered when non-empty.
func (l *Ledger) List(ctx context.Context, sessionID int64, status string) ([]models.QuestionSummary, error) {
	status, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT q.id, q.session_id, q.body, q.status, q.likes, q.created_at, q.answered_at,
		       q.author_user_id, u.display_name
		FROM questions q
		LEFT JOIN users u ON u.id = q.author_user_id
		WHERE q.session_id = $1`
	args := []any{sessionID}
	if status != "" {
		query += " AND q.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY q.created_at DESC, q.id DESC"

	rows, err := l.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.QuestionSummary{}
	for rows.Next() {
		var qs models.QuestionSummary
		var answeredAt sql.NullTime
		var authorID sql.NullInt64
		var authorName sql.NullString
		if err := rows.Scan(&qs.ID, &qs.SessionID, &qs.Body, &qs.Status, &qs.Likes, &qs.CreatedAt, &answeredAt, &authorID, &authorName); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if answeredAt.Valid {
			qs.AnsweredAt = &answeredAt.Time
		}
		if authorID.Valid {
			qs.Author = &models.UserSummary{ID: authorID.Int64, DisplayName: authorName.String}
		}
		questions = append(questions, qs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}
	return questions, nil
}

// MarkAnswered moves a pending question to answered. It happens at most
// once; a second call returns ErrAlreadyAnswered.
func (l *Ledger) MarkAnswered(ctx context.Context, id int64) (models.Question, error) {
	res, err := l.q.ExecContext(ctx, `
		UPDATE questions
		SET status = $1, answered_at = $2
		WHERE id = $3 AND status = $4
	`, models.QuestionAnswered, db.Now(), id, models.QuestionPending)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to mark question answered: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to read rows affected: %w", err)
	}

	q, err := l.Get(ctx, id)
	if err != nil {
		return models.Question{}, err
	}
	if n == 0 {
		return models.Question{}, models.ErrAlreadyAnswered
	}
	return q, nil
}
