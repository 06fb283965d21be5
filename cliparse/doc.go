// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - GeneratorURL: Question generator service base URL
    (default: http://localhost:8000)

# CLI Flags

	-p  Server port
	-d  Database URL
	-t  Database type
	-g  Generator service URL

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	GENERATOR_URL → -g

CLI flags take precedence over environment variables. main loads a
local .env file (if present) before parsing, so development secrets can
live beside the binary as they do for the exam frontend.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or the database
type is not sqlite/postgres.
*/
package cliparse
