// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the classengage API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET  /health
	POST /db/ping

Sessions (public):

	POST /sessions                     - Create session (returns host token)
	GET  /sessions?limit=N             - Recent draft and active sessions
	GET  /sessions/{code}              - Session details
	POST /sessions/{code}/join         - Join by display name (returns user token)
	GET  /sessions/{code}/participants - Roster, host first

Host operations (requires X-User-ID and X-User-Token of the host):

	POST /sessions/{code}/start
	POST /sessions/{code}/end
	POST /sessions/{code}/questions/{id}/answer

Questions (requires X-User-ID and X-User-Token for writes):

	GET  /sessions/{code}/questions?status=pending|answered
	POST /sessions/{code}/questions
	POST /questions/{id}/votes

Every route except GET /health is wrapped in middleware.WithLogging.
*/
package router
