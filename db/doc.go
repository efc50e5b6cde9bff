// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and runs the polls queries.

# Connecting

Open selects the driver from the configuration (modernc.org/sqlite or
lib/pq) and pings it:

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

The schema includes:

  - question: question text and publication date
  - choice: choice text and vote count per question

# Relationships

	question 1──* choice

The foreign key uses ON DELETE CASCADE. Votes can never go negative.

# Queries

PublishedQuestions and GetPublishedQuestion return what visitors may see:
questions whose pub_date is not after the given time and that have at least
one choice. GetPublishedQuestion reports ErrNotFound for anything else.
IncrementVote adds a vote in a single UPDATE, so concurrent votes are all
counted.

All timestamps are written and returned in UTC.
*/
package db
