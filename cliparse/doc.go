// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres URL or SQLite file path (required)
  - DatabaseType: "postgres" or "sqlite" (inferred from the URL when empty)
  - UserTokenSalt: Secret for user token HMAC (required)
  - LogLevel, LogFormat: slog handler settings (default: info, text)
  - Seed: insert sample sessions on startup

# Sources

Values are resolved in this order, later sources winning:

 1. .env file (path from ENV_FILE, default ".env"), loaded with godotenv
 2. Process environment, parsed with caarlos0/env
 3. CLI flags

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-token-salt   User token salt
	-log-level    Log level
	-log-format   Log format
	-seed         Seed sample sessions

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, USER_TOKEN_SALT,
	LOG_LEVEL, LOG_FORMAT, SEED

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - USER_TOKEN_SALT must be provided
  - PORT must be in 1-65535
*/
package cliparse
