// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (default: polls.db for sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - AdminToken: Bearer token for POST /api/questions (question creation is disabled when empty)
  - IndexLimit: Questions listed on the index page (default: 5)
  - RecentWindow: Window for "published recently" (default: 168h)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-admin-salt     Admin key salt
	-admin-token    Admin token
	-n              Index limit
	-recent-window  Recent window

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	ADMIN_TOKEN    → -admin-token
	INDEX_LIMIT    → -n
	RECENT_WINDOW  → -recent-window

A .env file in the working directory is loaded before parsing. Variables
already set in the environment win over the file. CLI flags take precedence
over both.
*/
package cliparse
