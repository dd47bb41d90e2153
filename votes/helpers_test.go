// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"context"
	"fmt"
)

// count returns the authoritative number of vote rows for the question.
func (s *Store) count(ctx context.Context, questionID int64) (int, error) {
	var n int
	err := s.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM question_votes WHERE question_id = $1
	`, questionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// drift lists questions in the session whose likes disagree with their
// vote rows. It is empty unless likes was written outside this package.
func (s *Store) drift(ctx context.Context, sessionID int64) ([]int64, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT q.id
		FROM questions q
		LEFT JOIN question_votes v ON v.question_id = q.id
		WHERE q.session_id = $1
		GROUP BY q.id, q.likes
		HAVING q.likes <> COUNT(v.id)
		ORDER BY q.id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like counts: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan question id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question ids: %w", err)
	}
	return ids, nil
}
