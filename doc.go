// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the examwatch API server.

Examwatch is the backend for a proctored online examination platform:
it serves exam questions to candidates, accepts submitted scores, and
aggregates integrity violations (tab switches, copy/paste, face not
visible, ...) reported live during a test session, broadcasting merged
counter state to observers over WebSocket.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 5000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded at startup if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - GENERATOR_URL (-g): question-generation service base URL

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (exam, tests, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types and the counter vocabulary
  - store: generic table-oriented storage client and schema
  - violations: normalize/reconcile/broadcast pipeline
  - realtime: WebSocket hub
  - generator: question-generation service client
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
