// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/testutil"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name    string
		dbType  string
		url     string
		want    db.Dialect
		wantErr bool
	}{
		{"explicit postgres", "postgres", "", db.Postgres, false},
		{"postgresql alias", "PostgreSQL", "", db.Postgres, false},
		{"explicit sqlite", "sqlite", "postgres://ignored", db.SQLite, false},
		{"sqlite3 alias", "sqlite3", "", db.SQLite, false},
		{"inferred postgres", "", "postgres://user@localhost/db", db.Postgres, false},
		{"inferred postgresql scheme", "", "postgresql://localhost/db", db.Postgres, false},
		{"inferred sqlite", "", "file:classengage.db", db.SQLite, false},
		{"unsupported", "mysql", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ParseDialect(tt.dbType, tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	host := testutil.CreateTestUser(t, conn, "Host")
	testutil.CreateTestSession(t, conn, host, "UNIQUE", "draft")

	_, err := conn.ExecContext(ctx, `
		INSERT INTO sessions (host_user_id, code, title, status, created_at)
		VALUES ($1, 'UNIQUE', 'Again', 'draft', $2)
	`, host, db.Now())
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err), "duplicate code: %v", err)
	assert.True(t, db.IsUniqueViolation(fmt.Errorf("wrapped: %w", err)))

	// A foreign key failure is a constraint error but not a unique one
	_, err = conn.ExecContext(ctx, `
		INSERT INTO sessions (host_user_id, code, title, status, created_at)
		VALUES ($1, 'ORPHAN', 'No host', 'draft', $2)
	`, host+1000, db.Now())
	require.Error(t, err)
	assert.False(t, db.IsUniqueViolation(err), "foreign key: %v", err)

	assert.True(t, db.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, db.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, db.IsUniqueViolation(errors.New("boom")))
	assert.False(t, db.IsUniqueViolation(nil))
}

func TestWithTx(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	insert := func(tx *sql.Tx, name string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (display_name, created_at) VALUES ($1, $2)`, name, db.Now())
		return err
	}

	t.Run("commit", func(t *testing.T) {
		err := db.WithTx(ctx, conn, func(tx *sql.Tx) error {
			return insert(tx, "Committed")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, testutil.CountRows(t, conn, "users", "display_name = $1", "Committed"))
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, conn, func(tx *sql.Tx) error {
			if err := insert(tx, "RolledBack"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, testutil.CountRows(t, conn, "users", "display_name = $1", "RolledBack"))
	})
}

func TestRecordPing(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	firstID, total, err := db.RecordPing(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	secondID, total, err := db.RecordPing(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Greater(t, secondID, firstID)
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	dialect := db.SQLite
	if testutil.UsingPostgres() {
		dialect = db.Postgres
	}
	require.NoError(t, db.CreateSchema(ctx, conn, dialect))

	for _, table := range []string{"users", "sessions", "session_participants", "questions", "question_votes", "app_health_checks"} {
		assert.Equal(t, 0, testutil.CountRows(t, conn, table, ""), table)
	}
}

func TestNowPrecision(t *testing.T) {
	now := db.Now()
	assert.Equal(t, 0, now.Nanosecond()%1000, "truncated to microseconds")
	assert.Equal(t, "UTC", now.Location().String())
}
