// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported database backend.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DATABASE_TYPE value to a Dialect. An empty value is
// inferred from the URL scheme.
func ParseDialect(dbType, url string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(dbType)) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "":
		if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
			return Postgres, nil
		}
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

// Querier is satisfied by both *sql.DB and *sql.Tx so stores can run
// inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect Dialect, url string) (*sql.DB, error) {
	driver := "postgres"
	if dialect == SQLite {
		driver = "sqlite"
		url = withSQLitePragmas(url)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY
	if dialect == SQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func withSQLitePragmas(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// WithTx runs fn inside a transaction. The transaction is committed if fn
// returns nil and rolled back otherwise.
func WithTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Now returns the current UTC time at microsecond precision, matching what
// Postgres stores, so records built in Go equal what a later read returns.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
