// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Opinion Court polls server.

Opinion Court publishes questions with a fixed set of choices. Visitors
browse the latest published questions, vote for one choice and see the
running tallies. Questions stay hidden until their publication date passes
and they have at least one choice.

# Starting the Server

With no configuration the server uses a local SQLite file:

	ADMIN_KEY_SALT=change-me go run .

Or against PostgreSQL with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt change-me

A .env file in the working directory is loaded before flags are parsed.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional secrets:

  - ADMIN_TOKEN (-admin-token): Bearer token for creating questions; creation is disabled without it

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string (default: polls.db)
  - INDEX_LIMIT (-n): Questions shown on the index page (default: 5)
  - RECENT_WINDOW (-recent-window): How long a question counts as recently published (default: 168h)
  - LOG_LEVEL: debug, info, warn or error (default: info)

# Architecture

  - urls: Named route table and reverse lookup
  - views: Embedded HTML templates
  - handlers: Page handlers (index, detail, results, vote) and the admin API
  - router: Mux wiring for pages, admin API and health check
  - middleware: Request logging, CORS, JSON helpers
  - models: Question and choice types
  - auth: Admin key generation and validation
  - db: Connection, schema and queries
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
