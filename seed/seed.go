// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed populates a database with demo sessions for development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/classengage/classroom"
	"github.com/danielhkuo/classengage/models"
)

type Sample struct {
	Title           string
	HostDisplayName string
	Code            string
}

// Samples are the demo sessions created by Run, each with a fixed code.
var Samples = []Sample{
	{Title: "Introduction to Python", HostDisplayName: "Shrek", Code: "PYTHON"},
	{Title: "Data Structures & Algorithms", HostDisplayName: "Donkey", Code: "DSA101"},
	{Title: "Web Development Fundamentals", HostDisplayName: "Lord Farquaad", Code: "WEB101"},
}

// Run creates every sample session that does not exist yet and returns how
// many it created. Running it twice is a no-op.
func Run(ctx context.Context, svc *classroom.Service) (int, error) {
	created := 0
	for _, s := range Samples {
		session, err := svc.CreateSessionWithCode(ctx, s.HostDisplayName, s.Title, s.Code)
		if errors.Is(err, models.ErrCodeTaken) {
			slog.Debug("seed session exists", "code", s.Code)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed session %s: %w", s.Code, err)
		}
		created++
		slog.Info("seeded session", "code", session.Code, "title", session.Title, "host", session.Host.DisplayName)
	}
	return created, nil
}
