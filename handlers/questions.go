// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/classengage/classroom"
	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/middleware"
	"github.com/danielhkuo/classengage/models"
)

type QuestionHandler struct {
	cfg cliparse.Config
	svc *classroom.Service
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{cfg: cfg, svc: classroom.NewService(db)}
}

func questionID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListQuestions handles GET /sessions/{code}/questions?status=pending|answered
// Actor headers are optional; when present they mark the caller's likes.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "list questions")
		return
	}

	questions, err := h.svc.Questions(r.Context(), r.PathValue("code"), r.URL.Query().Get("status"), viewer)
	if err != nil {
		writeError(w, r, err, "list questions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// SubmitQuestion handles POST /sessions/{code}/questions
func (h *QuestionHandler) SubmitQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := actorID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "submit question")
		return
	}

	var req models.SubmitQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	question, err := h.svc.SubmitQuestion(r.Context(), r.PathValue("code"), userID, req.Body)
	if err != nil {
		writeError(w, r, err, "submit question")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// AnswerQuestion handles POST /sessions/{code}/questions/{id}/answer (host only)
func (h *QuestionHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question id")
		return
	}

	userID, err := actorID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "answer question")
		return
	}

	question, err := h.svc.AnswerQuestion(r.Context(), r.PathValue("code"), userID, id)
	if err != nil {
		writeError(w, r, err, "answer question")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Vote handles POST /questions/{id}/votes
// Voting twice is not an error; the second response has added=false.
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := questionID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question id")
		return
	}

	userID, err := actorID(r, h.cfg.UserTokenSalt)
	if err != nil {
		writeError(w, r, err, "vote")
		return
	}

	result, err := h.svc.Vote(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err, "vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
