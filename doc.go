// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Secret Santa API server.

Secret Santa runs gift-exchange games: an owner creates a game with a short
public code, people join and submit gift ideas, and a single "run" draws a
random santa cycle and deals two ideas to every participant.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SALT=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -session-salt "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - SESSION_SALT (-session-salt): secret for session credential hashing

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): "postgres" (default) or "sqlite"
  - ADMIN_SECRET (-admin-secret): enables the admin endpoints
  - ALLOW_TABLE_RESET: must be "AllowResets" for POST /admin/reset

# Architecture

The server uses a handler-based architecture with dependency injection:

  - santa: game lifecycle state machine and fair-assignment engine
  - db: storage gateway (typed records, transactions, schema)
  - handlers: HTTP request handlers (sessions, games, participants, ideas, admin)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: key generation and credential verification
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
