// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls pages and the
admin API.

# Handler Types

  - PollsHandler: HTML pages (Index, Detail, Results, Vote)
  - AdminHandler: JSON question management (CreateQuestion, AddChoice, GetQuestion)

Handlers are created via constructor functions:

	pollsHandler := handlers.NewPollsHandler(db, cfg, renderer)
	adminHandler := handlers.NewAdminHandler(db, cfg)

# Pages

	GET  /polls/                       → Index (latest published questions)
	GET  /polls/{question_id}/         → Detail (vote form)
	GET  /polls/{question_id}/results/ → Results (tallies)
	POST /polls/{question_id}/vote/    → Vote (redirects to results)

Questions with a pub_date in the future or without any choice answer 404 on
every page. A valid X-Admin-Key lets the question's owner preview Detail and
Results before that. Voting never accepts such questions.

A vote with no choice, an unknown choice or a choice from another question
re-renders the detail page with an error message and records nothing.

# Admin API

	POST /api/questions                        → CreateQuestion (returns admin_key)
	POST /api/questions/{question_id}/choices  → AddChoice
	GET  /api/questions/{question_id}          → GetQuestion

CreateQuestion requires "Authorization: Bearer <ADMIN_TOKEN>" and is
disabled when no token is configured. Choice and inspection endpoints
require the question's X-Admin-Key header. Bodies over 64 KiB answer 413.
*/
package handlers
