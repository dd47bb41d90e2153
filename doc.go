// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the classengage API server.

classengage runs live classroom Q&A: a host opens a session with a short
join code, participants join by display name, ask questions and like each
other's questions, and the host answers them.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... USER_TOKEN_SALT=... go run .

Or with flags, against a local SQLite file:

	go run . -p 3318 -d "file:classengage.db" -token-salt dev-salt -seed

A .env file in the working directory (or the file named by ENV_FILE) is
loaded first. Real environment variables win over it and flags win over
both.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL URL or SQLite file URL
  - USER_TOKEN_SALT (-token-salt): Secret for user token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: inferred from the URL)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)
  - LOG_FORMAT (-log-format): text or json (default: text)
  - SEED (-seed): create the demo sessions PYTHON, DSA101 and WEB101

# Architecture

  - handlers: HTTP request handlers (sessions, questions, health)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request logging, JSON helpers
  - classroom: Use cases composing the stores below
  - identity, registry, roster, ledger, votes: One store per table
  - models: Records, request/response types, domain errors
  - auth: Join codes and user tokens
  - db: Connections, schema, transactions
  - cliparse: Configuration parsing
  - seed: Demo data

See package documentation for each component.
*/
package main
