// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package classroom

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/identity"
	"github.com/danielhkuo/classengage/ledger"
	"github.com/danielhkuo/classengage/models"
	"github.com/danielhkuo/classengage/registry"
	"github.com/danielhkuo/classengage/roster"
	"github.com/danielhkuo/classengage/votes"
)

type Service struct {
	db    *sql.DB
	codes registry.CodeGenerator

	// joinHost adds the host participant row inside the create transaction
	joinHost func(ctx context.Context, q db.Querier, session models.Session, userID int64) (models.Participant, error)
}

type Option func(*Service)

// WithCodeGenerator replaces the random join code source.
func WithCodeGenerator(gen registry.CodeGenerator) Option {
	return func(s *Service) {
		s.codes = gen
	}
}

func NewService(conn *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:    conn,
		codes: registry.DefaultCodeGenerator,
		joinHost: func(ctx context.Context, q db.Querier, session models.Session, userID int64) (models.Participant, error) {
			return roster.New(q).Join(ctx, session, userID)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession resolves the host by display name and creates a draft
// session with the host on its roster. The session and host participant
// rows commit together, so a failed roster insert leaves no orphan session.
func (s *Service) CreateSession(ctx context.Context, hostDisplayName, title string) (models.SessionSummary, error) {
	return s.createSession(ctx, hostDisplayName, title, func(r *registry.Registry, hostID int64, title string) (models.Session, error) {
		return r.Create(ctx, hostID, title)
	})
}

// CreateSessionWithCode is CreateSession with a fixed join code and no host
// cap. Used for seeding demo data.
func (s *Service) CreateSessionWithCode(ctx context.Context, hostDisplayName, title, code string) (models.SessionSummary, error) {
	return s.createSession(ctx, hostDisplayName, title, func(r *registry.Registry, hostID int64, title string) (models.Session, error) {
		return r.CreateWithCode(ctx, hostID, title, code)
	})
}

func (s *Service) createSession(
	ctx context.Context,
	hostDisplayName, title string,
	insert func(r *registry.Registry, hostID int64, title string) (models.Session, error),
) (models.SessionSummary, error) {
	name, err := identity.NormalizeDisplayName(hostDisplayName)
	if err != nil {
		return models.SessionSummary{}, err
	}
	cleanTitle, err := registry.NormalizeTitle(title)
	if err != nil {
		return models.SessionSummary{}, err
	}

	host, err := identity.NewStore(s.db).Resolve(ctx, name)
	if err != nil {
		return models.SessionSummary{}, err
	}

	var session models.Session
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		session, err = insert(registry.New(tx, s.codes), host.ID, cleanTitle)
		if err != nil {
			return err
		}
		_, err = s.joinHost(ctx, tx, session, host.ID)
		return err
	})
	if err != nil {
		return models.SessionSummary{}, err
	}

	slog.Info("session created", "session_id", session.ID, "code", session.Code, "host_user_id", host.ID)

	return session.Summary(host), nil
}

// JoinSession adds the named user to the session's roster and returns the
// session together with the acting user, who is the host only when the
// host joins their own session.
func (s *Service) JoinSession(ctx context.Context, code, displayName string) (models.JoinResult, error) {
	name, err := identity.NormalizeDisplayName(displayName)
	if err != nil {
		return models.JoinResult{}, err
	}

	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return models.JoinResult{}, err
	}
	if !session.Joinable() {
		return models.JoinResult{}, models.ErrNotJoinable
	}

	users := identity.NewStore(s.db)
	user, err := users.Resolve(ctx, name)
	if err != nil {
		return models.JoinResult{}, err
	}

	participant, err := roster.New(s.db).Join(ctx, session, user.ID)
	if err != nil {
		return models.JoinResult{}, err
	}

	host, err := users.GetByID(ctx, session.HostUserID)
	if err != nil {
		return models.JoinResult{}, err
	}

	slog.Info("session joined", "session_id", session.ID, "user_id", user.ID, "role", participant.Role)

	return models.JoinResult{
		Session: session.Summary(host),
		User:    user.Summary(),
	}, nil
}

// SubmitQuestion records a pending question from a roster member. Roster
// membership and the pending cap are checked before the body, so a
// non-participant always gets ErrNotParticipant.
func (s *Service) SubmitQuestion(ctx context.Context, code string, userID int64, body string) (models.QuestionSummary, error) {
	session, err := registry.New(s.db, s.codes).GetByCode(ctx, code)
	if err != nil {
		return models.QuestionSummary{}, err
	}
	if !session.Joinable() {
		return models.QuestionSummary{}, models.ErrNotJoinable
	}

	participant, err := roster.New(s.db).Get(ctx, session.ID, userID)
	if err != nil {
		return models.QuestionSummary{}, err
	}
	if participant == nil {
		return models.QuestionSummary{}, models.ErrNotParticipant
	}

	author, err := identity.NewStore(s.db).GetByID(ctx, userID)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.QuestionSummary{}, models.ErrNotParticipant
	}
	if err != nil {
		return models.QuestionSummary{}, err
	}

	questions := ledger.New(s.db)

	// Not atomic with the insert below; see Ledger.CountPending
	pending, err := questions.CountPending(ctx, session.ID, userID)
	if err != nil {
		return models.QuestionSummary{}, err
	}
	if pending >= models.PendingQuestionLimit {
		return models.QuestionSummary{}, models.ErrQuestionLimit
	}

	q, err := questions.Create(ctx, session.ID, &author.ID, body)
	if err != nil {
		return models.QuestionSummary{}, err
	}

	slog.Info("question submitted", "session_id", session.ID, "question_id", q.ID, "user_id", userID)

	summary := author.Summary()
	return models.QuestionSummary{
		ID:        q.ID,
		SessionID: q.SessionID,
		Body:      q.Body,
		Status:    q.Status,
		Likes:     q.Likes,
		Author:    &summary,
		CreatedAt: q.CreatedAt,
	}, nil
}

// Vote likes a question on behalf of userID. Repeat votes are no-ops.
func (s *Service) Vote(ctx context.Context, questionID, userID int64) (models.VoteResult, error) {
	if _, err := identity.NewStore(s.db).GetByID(ctx, userID); err != nil {
		return models.VoteResult{}, err
	}

	result, err := votes.NewStore(s.db).AddVote(ctx, questionID, userID)
	if err != nil {
		return models.VoteResult{}, err
	}

	slog.Info("vote recorded", "question_id", questionID, "user_id", userID, "added", result.Added, "likes", result.TotalLikes)

	return result, nil
}
