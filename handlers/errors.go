// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/classengage/auth"
	"github.com/danielhkuo/classengage/middleware"
	"github.com/danielhkuo/classengage/models"
)

// statusFor maps domain errors to HTTP status codes. Zero means the
// error is not a domain error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrQuestionNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotJoinable),
		errors.Is(err, models.ErrHostSessionLimit),
		errors.Is(err, models.ErrQuestionLimit),
		errors.Is(err, models.ErrAlreadyAnswered),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrCodeTaken):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotParticipant),
		errors.Is(err, models.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidUserToken),
		errors.Is(err, auth.ErrInvalidUserID):
		return http.StatusUnauthorized
	default:
		return 0
	}
}

// writeError sends the response for err. Domain errors carry their message
// to the client; anything else is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if status := statusFor(err); status != 0 {
		middleware.ErrorResponse(w, status, clientMessage(err))
		return
	}

	slog.Error("request failed",
		"action", action,
		"request_id", middleware.RequestID(r.Context()),
		"error", err,
	)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
}

// clientMessage strips the sentinel prefix that validation errors wrap
// around their detail, so "invalid input: title is required" becomes
// "title is required".
func clientMessage(err error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok && errors.Is(err, models.ErrInvalidBody) {
		return detail
	}
	return msg
}
