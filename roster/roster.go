// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package roster tracks who has joined each session.
package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

type Roster struct {
	q db.Querier
}

func New(q db.Querier) *Roster {
	return &Roster{q: q}
}

// RoleFor is the role a user must hold in the session: host for the
// session's host, participant for everyone else.
func RoleFor(session models.Session, userID int64) string {
	if userID == session.HostUserID {
		return models.RoleHost
	}
	return models.RoleParticipant
}

// Join records membership, idempotently. A repeat join keeps the original
// joined_at. The host row is forced back to role=host on every join, and a
// stored host role is never downgraded.
func (r *Roster) Join(ctx context.Context, session models.Session, userID int64) (models.Participant, error) {
	role := RoleFor(session, userID)

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO session_participants (session_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, user_id) DO UPDATE
		SET role = CASE
			WHEN excluded.role = 'host' OR session_participants.role = 'host' THEN 'host'
			ELSE excluded.role
		END
	`, session.ID, userID, role, db.Now())
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to upsert participant: %w", err)
	}

	p, err := r.Get(ctx, session.ID, userID)
	if err != nil {
		return models.Participant{}, err
	}
	if p == nil {
		return models.Participant{}, fmt.Errorf("participant %d missing after upsert into session %d", userID, session.ID)
	}
	return *p, nil
}

// Get returns nil when the user has not joined the session.
func (r *Roster) Get(ctx context.Context, sessionID, userID int64) (*models.Participant, error) {
	var p models.Participant
	err := r.q.QueryRowContext(ctx, `
		SELECT id, session_id, user_id, role, joined_at
		FROM session_participants
		WHERE session_id = $1 AND user_id = $2
	`, sessionID, userID).Scan(&p.ID, &p.SessionID, &p.UserID, &p.Role, &p.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}
	return &p, nil
}

// List returns the roster host first, then by join time.
func (r *Roster) List(ctx context.Context, sessionID int64) ([]models.ParticipantSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT p.user_id, u.display_name, p.role, p.joined_at
		FROM session_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.session_id = $1
		ORDER BY CASE WHEN p.role = 'host' THEN 0 ELSE 1 END, p.joined_at ASC, p.id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []models.ParticipantSummary{}
	for rows.Next() {
		var ps models.ParticipantSummary
		if err := rows.Scan(&ps.User.ID, &ps.User.DisplayName, &ps.Role, &ps.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}
