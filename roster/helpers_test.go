// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"fmt"
)

// count returns the number of roster rows for the session.
func (r *Roster) count(ctx context.Context, sessionID int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM session_participants WHERE session_id = $1
	`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return n, nil
}
