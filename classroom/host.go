// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classroom

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/classengage/identity"
	"github.com/danielhkuo/classengage/ledger"
	"github.com/danielhkuo/classengage/models"
	"github.com/danielhkuo/classengage/registry"
)

// hostSession loads the session and checks that userID is its host.
func (s *Service) hostSession(ctx context.Context, code string, userID int64) (models.Session, error) {
	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return models.Session{}, err
	}
	if session.HostUserID != userID {
		return models.Session{}, models.ErrNotHost
	}
	return session, nil
}

// StartSession opens a draft session. Host only.
func (s *Service) StartSession(ctx context.Context, code string, userID int64) (models.SessionSummary, error) {
	return s.transition(ctx, code, userID, (*registry.Registry).Start)
}

// EndSession closes a session for good. Host only.
func (s *Service) EndSession(ctx context.Context, code string, userID int64) (models.SessionSummary, error) {
	return s.transition(ctx, code, userID, (*registry.Registry).End)
}

func (s *Service) transition(
	ctx context.Context,
	code string,
	userID int64,
	move func(r *registry.Registry, ctx context.Context, id int64) (models.Session, error),
) (models.SessionSummary, error) {
	session, err := s.hostSession(ctx, code, userID)
	if err != nil {
		return models.SessionSummary{}, err
	}

	updated, err := move(registry.New(s.db, s.codes), ctx, session.ID)
	if err != nil {
		return models.SessionSummary{}, err
	}

	host, err := identity.NewStore(s.db).GetByID(ctx, updated.HostUserID)
	if err != nil {
		return models.SessionSummary{}, err
	}

	slog.Info("session status changed", "session_id", updated.ID, "from", session.Status, "to", updated.Status)

	return updated.Summary(host), nil
}

// AnswerQuestion marks a question in the session as answered. Host only.
func (s *Service) AnswerQuestion(ctx context.Context, code string, userID, questionID int64) (models.QuestionSummary, error) {
	session, err := s.hostSession(ctx, code, userID)
	if err != nil {
		return models.QuestionSummary{}, err
	}

	questions := ledger.New(s.db)
	q, err := questions.Get(ctx, questionID)
	if err != nil {
		return models.QuestionSummary{}, err
	}
	if q.SessionID != session.ID {
		return models.QuestionSummary{}, models.ErrQuestionNotFound
	}

	q, err = questions.MarkAnswered(ctx, questionID)
	if err != nil {
		return models.QuestionSummary{}, err
	}

	summary := models.QuestionSummary{
		ID:         q.ID,
		SessionID:  q.SessionID,
		Body:       q.Body,
		Status:     q.Status,
		Likes:      q.Likes,
		CreatedAt:  q.CreatedAt,
		AnsweredAt: q.AnsweredAt,
	}
	if q.AuthorUserID != nil {
		author, err := identity.NewStore(s.db).GetByID(ctx, *q.AuthorUserID)
		if err != nil && !errors.Is(err, models.ErrUserNotFound) {
			return models.QuestionSummary{}, err
		}
		if err == nil {
			as := author.Summary()
			summary.Author = &as
		}
	}

	slog.Info("question answered", "session_id", session.ID, "question_id", q.ID)

	return summary, nil
}
