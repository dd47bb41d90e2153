// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classroom

import (
	"context"
	"fmt"

	"github.com/danielhkuo/classengage/identity"
	"github.com/danielhkuo/classengage/ledger"
	"github.com/danielhkuo/classengage/models"
	"github.com/danielhkuo/classengage/registry"
	"github.com/danielhkuo/classengage/roster"
	"github.com/danielhkuo/classengage/votes"
)

// RecentSessions lists joinable (draft or active) sessions, newest first.
func (s *Service) RecentSessions(ctx context.Context, limit int) ([]models.SessionSummary, error) {
	sessions, err := registry.New(s.db, s.codes).ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	hostIDs := make([]int64, 0, len(sessions))
	seen := make(map[int64]bool, len(sessions))
	for _, session := range sessions {
		if !seen[session.HostUserID] {
			seen[session.HostUserID] = true
			hostIDs = append(hostIDs, session.HostUserID)
		}
	}

	hosts, err := identity.NewStore(s.db).GetMany(ctx, hostIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		host, ok := hosts[session.HostUserID]
		if !ok {
			return nil, fmt.Errorf("host %d of session %d: %w", session.HostUserID, session.ID, models.ErrUserNotFound)
		}
		summaries = append(summaries, session.Summary(host))
	}
	return summaries, nil
}

// SessionDetails returns the session for a join code with its host.
func (s *Service) SessionDetails(ctx context.Context, code string) (models.SessionSummary, error) {
	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return models.SessionSummary{}, err
	}

	host, err := identity.NewStore(s.db).GetByID(ctx, session.HostUserID)
	if err != nil {
		return models.SessionSummary{}, err
	}
	return session.Summary(host), nil
}

// Participants returns the roster for a join code, host first.
func (s *Service) Participants(ctx context.Context, code string) ([]models.ParticipantSummary, error) {
	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return roster.New(s.db).List(ctx, session.ID)
}

// Questions returns the questions for a join code, newest first, filtered
// by status when status is non-empty. A non-zero viewerID marks the
// questions that user has liked.
func (s *Service) Questions(ctx context.Context, code, status string, viewerID int64) ([]models.QuestionSummary, error) {
	if _, err := ledger.ParseStatus(status); err != nil {
		return nil, err
	}

	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	questions, err := ledger.New(s.db).List(ctx, session.ID, status)
	if err != nil || viewerID == 0 {
		return questions, err
	}

	store := votes.NewStore(s.db)
	for i := range questions {
		liked, err := store.HasVoted(ctx, questions[i].ID, viewerID)
		if err != nil {
			return nil, err
		}
		questions[i].Liked = liked
	}
	return questions, nil
}
