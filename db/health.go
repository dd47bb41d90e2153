// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"
)

// RecordPing inserts a row into app_health_checks and returns its id and
// the total number of rows, exercising a full write/read round trip.
func RecordPing(ctx context.Context, q Querier) (int64, int, error) {
	var insertedID int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO app_health_checks (checked_at)
		VALUES ($1)
		RETURNING id
	`, time.Now().UTC()).Scan(&insertedID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to record ping: %w", err)
	}

	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_health_checks`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("failed to count pings: %w", err)
	}

	return insertedID, total, nil
}
