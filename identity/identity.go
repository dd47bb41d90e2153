// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package identity resolves users by display name, creating them on first
// reference.
package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

type Store struct {
	q db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{q: q}
}

// NormalizeDisplayName trims a display name and enforces its length.
// The name is otherwise kept as sent.
func NormalizeDisplayName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", fmt.Errorf("%w: display name is required", models.ErrInvalidBody)
	}
	if utf8.RuneCountInString(clean) > models.MaxDisplayNameLength {
		return "", fmt.Errorf("%w: display name exceeds %d characters", models.ErrInvalidBody, models.MaxDisplayNameLength)
	}
	return clean, nil
}

// Resolve returns the user with the given display name, creating it if
// absent. Names are not unique in the table; concurrent first references
// may create two rows, and lookups always pick the oldest.
func (s *Store) Resolve(ctx context.Context, displayName string) (models.User, error) {
	clean, err := NormalizeDisplayName(displayName)
	if err != nil {
		return models.User{}, err
	}

	existing, err := s.GetByDisplayName(ctx, clean)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	return s.Create(ctx, clean)
}

// GetByDisplayName returns nil when no user has the name. Composed and
// decomposed spellings of the same name match each other.
func (s *Store) GetByDisplayName(ctx context.Context, displayName string) (*models.User, error) {
	var u models.User
	err := s.q.QueryRowContext(ctx, `
		SELECT id, display_name, created_at
		FROM users
		WHERE display_name IN ($1, $2, $3)
		ORDER BY id
		LIMIT 1
	`, displayName, norm.NFC.String(displayName), norm.NFD.String(displayName)).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by name: %w", err)
	}
	return &u, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.q.QueryRowContext(ctx, `
		SELECT id, display_name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user %d: %w", id, err)
	}
	return u, nil
}

// Create inserts a user without checking for an existing name.
func (s *Store) Create(ctx context.Context, displayName string) (models.User, error) {
	u := models.User{DisplayName: displayName, CreatedAt: db.Now()}
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO users (display_name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, u.DisplayName, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

// GetMany loads users by id in one query, keyed by id. Missing ids are
// absent from the result.
func (s *Store) GetMany(ctx context.Context, ids []int64) (map[int64]models.User, error) {
	users := make(map[int64]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, display_name, created_at
		FROM users
		WHERE id IN (`+strings.Join(placeholders, ", ")+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.DisplayName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
