// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the store boundary: connections, schema, transactions, and
driver error classification.

# Dialects

Two backends are supported and share the same DML ($n placeholders,
ON CONFLICT, RETURNING):

  - Postgres via github.com/lib/pq
  - SQLite via modernc.org/sqlite (development and tests)

	dialect, err := db.ParseDialect(cfg.DatabaseType, cfg.DatabaseURL)
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables for the dialect:

	if err := db.CreateSchema(ctx, conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: display names, created on first reference
  - sessions: join code (unique), title, lifecycle state
  - session_participants: membership, UNIQUE(session_id, user_id)
  - questions: body, status, likes (CHECK likes >= 0)
  - question_votes: UNIQUE(question_id, voter_user_id)
  - app_health_checks: rows written by the database ping

# Relationships

	users 1──* sessions (host)
	sessions 1──* session_participants *──1 users
	sessions 1──* questions *──1 users (author, nullable)
	questions 1──* question_votes *──1 users

# Transactions

Stores accept a Querier, satisfied by *sql.DB and *sql.Tx. WithTx commits
when the callback returns nil and rolls back otherwise.

# Errors

IsUniqueViolation recognises Postgres SQLSTATE 23505 and SQLite
SQLITE_CONSTRAINT_UNIQUE.
*/
package db
