// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/handlers"
	"github.com/danielhkuo/classengage/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)

	// Health checks
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /db/ping", middleware.WithLogging(healthHandler.DBPing))

	// Sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions", middleware.WithLogging(sessionHandler.ListSessions))
	mux.HandleFunc("GET /sessions/{code}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{code}/join", middleware.WithLogging(sessionHandler.JoinSession))
	mux.HandleFunc("GET /sessions/{code}/participants", middleware.WithLogging(sessionHandler.ListParticipants))

	// Host operations
	mux.HandleFunc("POST /sessions/{code}/start", middleware.WithLogging(sessionHandler.StartSession))
	mux.HandleFunc("POST /sessions/{code}/end", middleware.WithLogging(sessionHandler.EndSession))
	mux.HandleFunc("POST /sessions/{code}/questions/{id}/answer", middleware.WithLogging(questionHandler.AnswerQuestion))

	// Questions and likes
	mux.HandleFunc("GET /sessions/{code}/questions", middleware.WithLogging(questionHandler.ListQuestions))
	mux.HandleFunc("POST /sessions/{code}/questions", middleware.WithLogging(questionHandler.SubmitQuestion))
	mux.HandleFunc("POST /questions/{id}/votes", middleware.WithLogging(questionHandler.Vote))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classengage API v1"))
	})

	return mux
}
