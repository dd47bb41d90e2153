// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Participant role constants
const (
	RoleHost        = "host"
	RoleParticipant = "participant"
)

// Question status constants
const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
)

// Limits enforced by the orchestrator and the stores
const (
	HostSessionLimit     = 3
	PendingQuestionLimit = 3
	MaxQuestionLength    = 280
	MaxTitleLength       = 200
	MaxDisplayNameLength = 100
	JoinCodeLength       = 6
	MaxCodeAttempts      = 10
)

// Request types

type CreateSessionRequest struct {
	Title           string `json:"title"`
	HostDisplayName string `json:"host_display_name"`
}

type JoinSessionRequest struct {
	DisplayName string `json:"display_name"`
}

type SubmitQuestionRequest struct {
	Body string `json:"body"`
}

// Response types

type CreateSessionResponse struct {
	Session   SessionSummary `json:"session"`
	UserToken string         `json:"user_token"`
}

type JoinResult struct {
	Session   SessionSummary `json:"session"`
	User      UserSummary    `json:"user"`
	UserToken string         `json:"user_token"`
}

type VoteResult struct {
	QuestionID int64 `json:"question_id"`
	Liked      bool  `json:"liked"`
	TotalLikes int   `json:"total_likes"`
	Added      bool  `json:"added"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DatabasePingResult struct {
	InsertedID int64 `json:"inserted_id"`
	TotalRows  int   `json:"total_rows"`
}

// Domain types, one per table

type User struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Session struct {
	ID         int64      `json:"id"`
	HostUserID int64      `json:"host_user_id"`
	Code       string     `json:"code"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// Joinable reports whether participants may still join or ask questions.
func (s Session) Joinable() bool {
	return s.Status != StatusEnded
}

type Participant struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

type Question struct {
	ID           int64      `json:"id"`
	SessionID    int64      `json:"session_id"`
	AuthorUserID *int64     `json:"author_user_id,omitempty"`
	Body         string     `json:"body"`
	Status       string     `json:"status"`
	Likes        int        `json:"likes"`
	CreatedAt    time.Time  `json:"created_at"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}

type Vote struct {
	ID          int64     `json:"id"`
	QuestionID  int64     `json:"question_id"`
	VoterUserID int64     `json:"voter_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary types returned to callers

type UserSummary struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

type SessionSummary struct {
	ID        int64       `json:"id"`
	Code      string      `json:"code"`
	Title     string      `json:"title"`
	Status    string      `json:"status"`
	Host      UserSummary `json:"host"`
	CreatedAt time.Time   `json:"created_at"`
}

type ParticipantSummary struct {
	User     UserSummary `json:"user"`
	Role     string      `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// Author is nil for anonymous questions. Liked is set only on listings
// requested by an identified user.
type QuestionSummary struct {
	ID         int64        `json:"id"`
	SessionID  int64        `json:"session_id"`
	Body       string       `json:"body"`
	Status     string       `json:"status"`
	Likes      int          `json:"likes"`
	Author     *UserSummary `json:"author"`
	Liked      bool         `json:"liked"`
	CreatedAt  time.Time    `json:"created_at"`
	AnsweredAt *time.Time   `json:"answered_at,omitempty"`
}

// Summary builds the public view of a user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, DisplayName: u.DisplayName}
}

// Summary builds the public view of a session with its host attached.
func (s Session) Summary(host User) SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		Code:      s.Code,
		Title:     s.Title,
		Status:    s.Status,
		Host:      host.Summary(),
		CreatedAt: s.CreatedAt,
	}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
