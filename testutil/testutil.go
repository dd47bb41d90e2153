// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/models"
)

// TestDBEnv names the environment variable holding a Postgres URL for
// tests. When unset, each test gets its own SQLite file.
const TestDBEnv = "CLASSENGAGE_TEST_DB_URL"

// UsingPostgres reports whether tests run against the Postgres named by
// TestDBEnv.
func UsingPostgres() bool {
	return os.Getenv(TestDBEnv) != ""
}

// SetupTestDB creates a fresh test database with the full schema. The
// connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dialect := db.SQLite
	url := os.Getenv(TestDBEnv)
	if UsingPostgres() {
		dialect = db.Postgres
	} else {
		url = "file:" + filepath.Join(t.TempDir(), "test.db")
	}

	conn, err := db.Open(ctx, dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if dialect == db.Postgres {
		if err := db.DropSchema(ctx, conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(ctx, conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   "file:test.db",
		DatabaseType:  string(db.SQLite),
		UserTokenSalt: "test-token-salt",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, displayName string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO users (display_name, created_at)
		VALUES ($1, $2)
		RETURNING id
	`, displayName, db.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestSession inserts a session with its host participant row
// status should be "draft", "active", or "ended"
func CreateTestSession(t *testing.T, conn *sql.DB, hostUserID int64, code, status string) models.Session {
	t.Helper()

	now := db.Now()
	s := models.Session{
		HostUserID: hostUserID,
		Code:       code,
		Title:      "Test Session",
		Status:     status,
		CreatedAt:  now,
	}

	var startedAt, endedAt *time.Time
	if status == models.StatusActive || status == models.StatusEnded {
		startedAt = &now
	}
	if status == models.StatusEnded {
		endedAt = &now
	}
	s.StartedAt, s.EndedAt = startedAt, endedAt

	err := conn.QueryRow(`
		INSERT INTO sessions (host_user_id, code, title, status, created_at, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, s.HostUserID, s.Code, s.Title, s.Status, s.CreatedAt, startedAt, endedAt).Scan(&s.ID)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	AddTestParticipant(t, conn, s.ID, hostUserID, models.RoleHost)
	return s
}

// AddTestParticipant inserts a roster row directly
func AddTestParticipant(t *testing.T, conn *sql.DB, sessionID, userID int64, role string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO session_participants (session_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`, sessionID, userID, role, db.Now())
	if err != nil {
		t.Fatalf("Failed to add test participant: %v", err)
	}
}

// CreateTestQuestion inserts a pending question and returns its ID
func CreateTestQuestion(t *testing.T, conn *sql.DB, sessionID, authorUserID int64, body string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO questions (session_id, author_user_id, body, status, likes, created_at)
		VALUES ($1, $2, $3, 'pending', 0, $4)
		RETURNING id
	`, sessionID, authorUserID, body, db.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return id
}

// CountRows counts rows in a table matching an optional WHERE clause
func CountRows(t *testing.T, conn *sql.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
