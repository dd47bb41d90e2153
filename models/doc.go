// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

One typed record per table, decoded once at the store boundary:

  - User: display name and creation time
  - Session: host, join code, title, lifecycle state
  - Participant: session membership with role
  - Question: body, status, denormalised like count
  - Vote: one like per (question, voter)

# Summary Types

Nested views returned to callers:

  - UserSummary: id, display_name
  - SessionSummary: session with its host
  - ParticipantSummary: user, role, joined_at
  - QuestionSummary: question with its author (nil when anonymous)

# Request and Response Types

  - CreateSessionRequest / CreateSessionResponse
  - JoinSessionRequest / JoinResult
  - SubmitQuestionRequest
  - VoteResult
  - HealthStatus, DatabasePingResult, ErrorResponse

# Constants

Session status values:

	StatusDraft  = "draft"
	StatusActive = "active"
	StatusEnded  = "ended"

Participant roles:

	RoleHost        = "host"
	RoleParticipant = "participant"

Question status values:

	QuestionPending  = "pending"
	QuestionAnswered = "answered"

# Errors

errors.go holds the error taxonomy (ErrNotFound, ErrNotJoinable,
ErrHostSessionLimit, ErrCodeExhausted, ErrInvalidBody, ErrNotParticipant,
ErrQuestionLimit and friends). Match with errors.Is.
*/
package models
