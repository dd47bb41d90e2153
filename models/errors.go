// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Domain errors shared by the stores and the orchestrator. Callers match
// them with errors.Is; stores wrap them with context.
var (
	ErrNotFound          = errors.New("session not found")
	ErrNotJoinable       = errors.New("session has ended")
	ErrHostSessionLimit  = errors.New("host has reached the maximum number of active sessions")
	ErrCodeExhausted     = errors.New("failed to generate a unique join code")
	ErrCodeTaken         = errors.New("join code already in use")
	ErrInvalidBody       = errors.New("invalid input")
	ErrNotParticipant    = errors.New("user is not a participant in the session")
	ErrQuestionLimit     = errors.New("user has reached the maximum of 3 pending questions")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAlreadyAnswered   = errors.New("question already answered")
	ErrNotHost           = errors.New("only the session host may do that")
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrUserNotFound      = errors.New("user not found")
)
