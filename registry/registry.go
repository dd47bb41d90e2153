// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package registry stores sessions: join code allocation, the per-host
// session cap and the draft/active/ended lifecycle.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/classengage/auth"
	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

// CodeGenerator produces candidate join codes.
type CodeGenerator func() (string, error)

// DefaultCodeGenerator draws random 6-character uppercase alphanumeric codes.
func DefaultCodeGenerator() (string, error) {
	return auth.GenerateJoinCode(models.JoinCodeLength)
}

type Registry struct {
	q            db.Querier
	generateCode CodeGenerator
}

// New returns a Registry over q. A nil gen uses DefaultCodeGenerator.
func New(q db.Querier, gen CodeGenerator) *Registry {
	if gen == nil {
		gen = DefaultCodeGenerator
	}
	return &Registry{q: q, generateCode: gen}
}

// NormalizeTitle trims a session title and checks its length.
func NormalizeTitle(title string) (string, error) {
	clean := strings.TrimSpace(title)
	if clean == "" {
		return "", fmt.Errorf("%w: title is required", models.ErrInvalidBody)
	}
	if utf8.RuneCountInString(clean) > models.MaxTitleLength {
		return "", fmt.Errorf("%w: title exceeds %d characters", models.ErrInvalidBody, models.MaxTitleLength)
	}
	return clean, nil
}

// Create inserts a draft session with a freshly generated join code.
//
// The host cap is checked before the insert; the check and the insert are
// not serialised against other creators, so concurrent requests from the
// same host can briefly exceed the cap.
func (r *Registry) Create(ctx context.Context, hostUserID int64, title string) (models.Session, error) {
	active, err := r.CountActiveForHost(ctx, hostUserID)
	if err != nil {
		return models.Session{}, err
	}
	if active >= models.HostSessionLimit {
		return models.Session{}, models.ErrHostSessionLimit
	}

	for attempt := 1; attempt <= models.MaxCodeAttempts; attempt++ {
		code, err := r.generateCode()
		if err != nil {
			return models.Session{}, err
		}

		session, inserted, err := r.insert(ctx, hostUserID, title, code)
		if err != nil {
			return models.Session{}, err
		}
		if inserted {
			return session, nil
		}

		slog.Debug("join code collision", "attempt", attempt, "host_user_id", hostUserID)
	}

	return models.Session{}, models.ErrCodeExhausted
}

// CreateWithCode inserts a draft session with a caller-chosen code. It does
// not retry and does not check the host cap.
func (r *Registry) CreateWithCode(ctx context.Context, hostUserID int64, title, code string) (models.Session, error) {
	session, inserted, err := r.insert(ctx, hostUserID, title, auth.NormalizeCode(code))
	if err != nil {
		return models.Session{}, err
	}
	if !inserted {
		return models.Session{}, fmt.Errorf("%w: %s", models.ErrCodeTaken, code)
	}
	return session, nil
}

// insert reports inserted=false when the code is already taken. ON CONFLICT
// DO NOTHING keeps a surrounding Postgres transaction usable after a
// collision, which a raised unique violation would abort.
func (r *Registry) insert(ctx context.Context, hostUserID int64, title, code string) (models.Session, bool, error) {
	s := models.Session{
		HostUserID: hostUserID,
		Code:       code,
		Title:      title,
		Status:     models.StatusDraft,
		CreatedAt:  db.Now(),
	}

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO sessions (host_user_id, code, title, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`, s.HostUserID, s.Code, s.Title, s.Status, s.CreatedAt).Scan(&s.ID)

	if errors.Is(err, sql.ErrNoRows) || db.IsUniqueViolation(err) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("failed to insert session: %w", err)
	}
	return s, true, nil
}

const sessionColumns = `id, host_user_id, code, title, status, created_at, started_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (models.Session, error) {
	var s models.Session
	var startedAt, endedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.HostUserID, &s.Code, &s.Title, &s.Status, &s.CreatedAt, &startedAt, &endedAt); err != nil {
		return models.Session{}, err
	}
	if startedAt.Valid {
		s.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return s, nil
}

// GetByCode looks a session up by join code, ignoring case and
// surrounding whitespace.
func (r *Registry) GetByCode(ctx context.Context, code string) (models.Session, error) {
	s, err := scanSession(r.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE code = $1
	`, auth.NormalizeCode(code)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session by code: %w", err)
	}
	return s, nil
}

func (r *Registry) GetByID(ctx context.Context, id int64) (models.Session, error) {
	s, err := scanSession(r.q.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session %d: %w", id, err)
	}
	return s, nil
}

// CountActiveForHost counts the host's draft and active sessions.
func (r *Registry) CountActiveForHost(ctx context.Context, hostUserID int64) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM sessions
		WHERE host_user_id = $1 AND status IN ($2, $3)
	`, hostUserID, models.StatusDraft, models.StatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}

// ListRecent returns sessions newest first. With no statuses it lists draft
// and active sessions; limit <= 0 means no limit.
func (r *Registry) ListRecent(ctx context.Context, limit int, statuses ...string) ([]models.Session, error) {
	if len(statuses) == 0 {
		statuses = []string{models.StatusDraft, models.StatusActive}
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, 0, len(statuses)+1)
	for i, status := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args = append(args, status)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE status IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

// Start moves a draft session to active.
func (r *Registry) Start(ctx context.Context, id int64) (models.Session, error) {
	return r.transition(ctx, id, `
		UPDATE sessions
		SET status = 'active', started_at = $1
		WHERE id = $2 AND status = 'draft'
	`)
}

// End moves a draft or active session to ended. Ended is terminal.
func (r *Registry) End(ctx context.Context, id int64) (models.Session, error) {
	return r.transition(ctx, id, `
		UPDATE sessions
		SET status = 'ended', ended_at = $1
		WHERE id = $2 AND status IN ('draft', 'active')
	`)
}

func (r *Registry) transition(ctx context.Context, id int64, update string) (models.Session, error) {
	res, err := r.q.ExecContext(ctx, update, db.Now(), id)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to update session status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to read rows affected: %w", err)
	}

	s, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	if n == 0 {
		return models.Session{}, fmt.Errorf("%w: session is %s", models.ErrInvalidTransition, s.Status)
	}
	return s, nil
}

