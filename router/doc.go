// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, renderer)

# Endpoints

Health:

	GET /health

Polls pages (HTML), registered from urls.Routes by name:

	GET  /polls/                      - polls:index
	GET  /polls/{question_id}/        - polls:detail
	GET  /polls/{question_id}/results/ - polls:results
	POST /polls/{question_id}/vote/    - polls:vote

question_id must be all digits; anything else is a 404 from the view.

Admin API (JSON, CORS enabled, X-Admin-Key on per-question routes):

	POST /api/questions                         - Create question
	GET  /api/questions/{question_id}           - Question with choices
	POST /api/questions/{question_id}/choices   - Add choice

The root path redirects to polls:index.
*/
package router
