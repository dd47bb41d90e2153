// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package votes records likes on questions and is the only writer of the
// denormalised questions.likes counter.
//
// A vote row and its +1 on likes are committed together or not at all, so
// likes always equals the number of vote rows for the question. Voting is
// create-or-noop: a repeat vote by the same user changes nothing.
// Retraction is not supported.
package votes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

type Store struct {
	conn *sql.DB
}

// NewStore takes the pool rather than a Querier because AddVote opens its
// own transaction.
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// AddVote records voterUserID's like on the question. The first vote
// inserts the row and increments likes in one transaction; a duplicate is
// a no-op reported with Added=false.
func (s *Store) AddVote(ctx context.Context, questionID, voterUserID int64) (models.VoteResult, error) {
	var result models.VoteResult

	err := db.WithTx(ctx, s.conn, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM questions WHERE id = $1`, questionID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrQuestionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query question: %w", err)
		}

		// The unique (question_id, voter_user_id) index makes a concurrent
		// duplicate wait for the first insert, then do nothing
		res, err := tx.ExecContext(ctx, `
			INSERT INTO question_votes (question_id, voter_user_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (question_id, voter_user_id) DO NOTHING
		`, questionID, voterUserID, db.Now())
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}

		if inserted == 1 {
			res, err := tx.ExecContext(ctx, `
				UPDATE questions SET likes = likes + 1 WHERE id = $1
			`, questionID)
			if err != nil {
				return fmt.Errorf("failed to increment likes: %w", err)
			}
			updated, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read rows affected: %w", err)
			}
			if updated != 1 {
				return models.ErrQuestionNotFound
			}
		}

		var likes int
		if err := tx.QueryRowContext(ctx, `SELECT likes FROM questions WHERE id = $1`, questionID).Scan(&likes); err != nil {
			return fmt.Errorf("failed to read likes: %w", err)
		}

		result = models.VoteResult{
			QuestionID: questionID,
			Liked:      true,
			TotalLikes: likes,
			Added:      inserted == 1,
		}
		return nil
	})
	if err != nil {
		return models.VoteResult{}, err
	}
	return result, nil
}

// HasVoted reports whether voterUserID has liked the question.
func (s *Store) HasVoted(ctx context.Context, questionID, voterUserID int64) (bool, error) {
	var exists bool
	err := s.conn.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM question_votes
			WHERE question_id = $1 AND voter_user_id = $2
		)
	`, questionID, voterUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}
