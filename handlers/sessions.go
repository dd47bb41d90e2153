// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/classengage/auth"
	"github.com/danielhkuo/classengage/classroom"
	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/middleware"
	"github.com/danielhkuo/classengage/models"
)

const defaultSessionListLimit = 20

type SessionHandler struct {
	cfg cliparse.Config
	svc *classroom.Service
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg, svc: classroom.NewService(db)}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	session, err := h.svc.CreateSession(r.Context(), req.HostDisplayName, req.Title)
	if err != nil {
		writeError(w, r, err, "create session")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		Session:   session,
		UserToken: auth.GenerateUserToken(session.Host.ID, h.cfg.UserTokenSalt),
	})
}

// ListSessions handles GET /sessions?limit=N
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	sessions, err := h.svc.RecentSessions(r.Context(), limit)
	if err != nil {
		writeError(w, r, err, "list sessions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sessions)
}

// GetSession handles GET /sessions/{code}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.SessionDetails(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, r, err, "get session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// JoinSession handles POST /sessions/{code}/join
// Returns the acting user's token for later question and vote requests.
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.svc.JoinSession(r.Context(), r.PathValue("code"), req.DisplayName)
	if err != nil {
		writeError(w, r, err, "join session")
		return
	}
	result.UserToken = auth.GenerateUserToken(result.User.ID, h.cfg.UserTokenSalt)

	middleware.JSONResponse(w, http.StatusOK, result)
}

// StartSession handles POST /sessions/{code}/start (host only)
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := actorID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "start session")
		return
	}

	session, err := h.svc.StartSession(r.Context(), r.PathValue("code"), userID)
	if err != nil {
		writeError(w, r, err, "start session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// EndSession handles POST /sessions/{code}/end (host only)
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, err := actorID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "end session")
		return
	}

	session, err := h.svc.EndSession(r.Context(), r.PathValue("code"), userID)
	if err != nil {
		writeError(w, r, err, "end session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// ListParticipants handles GET /sessions/{code}/participants
func (h *SessionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.svc.Participants(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, r, err, "list participants")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}
