// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/classengage/cliparse"
	"github.com/danielhkuo/classengage/db"
	"github.com/danielhkuo/classengage/middleware"
	"github.com/danielhkuo/classengage/models"
)

type HealthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewHealthHandler(db *sql.DB, cfg cliparse.Config) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthStatus{
		Status:  "ok",
		Message: "classengage API is running",
	})
}

// DBPing handles POST /db/ping
// Writes a row and counts the table to prove the database is usable.
func (h *HealthHandler) DBPing(w http.ResponseWriter, r *http.Request) {
	insertedID, total, err := db.RecordPing(r.Context(), h.db)
	if err != nil {
		slog.Error("database ping failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DatabasePingResult{
		InsertedID: insertedID,
		TotalRows:  total,
	})
}
