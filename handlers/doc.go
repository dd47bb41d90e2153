// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the classengage API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: session create, join, lifecycle and roster
  - QuestionHandler: question submission, listing, answering and likes
  - HealthHandler: liveness and database round trip

Handlers are created via constructor functions that accept *sql.DB and Config:

	sessionHandler := handlers.NewSessionHandler(db, cfg)

All business rules live in package classroom. Handlers decode the request,
call the service and map its sentinel errors to status codes:

	404  session, question or user not found
	409  session ended, host or question cap reached, invalid transition
	400  invalid body or query
	403  not a participant, not the host
	401  missing or forged user token
	500  anything else (logged, never shown to the client)

# Session Lifecycle

Sessions progress through three states: draft → active → ended

	POST /sessions              → CreateSession (returns user_token for the host)
	POST /sessions/{code}/join  → JoinSession (returns user_token for the joiner)
	POST /sessions/{code}/start → StartSession (host)
	POST /sessions/{code}/end   → EndSession (host)

# Acting User

Requests that act on behalf of a user send the id and token returned by
create or join:

	X-User-ID: 42
	X-User-Token: <user_token>

# Questions and Likes

	POST /sessions/{code}/questions              → SubmitQuestion
	POST /sessions/{code}/questions/{id}/answer  → AnswerQuestion (host)
	POST /questions/{id}/votes                   → Vote

A repeated vote returns 200 with added=false.
*/
package handlers
