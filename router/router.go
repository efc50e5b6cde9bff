// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/ckchivatsi/opinion-court/cliparse"
	"github.com/ckchivatsi/opinion-court/handlers"
	"github.com/ckchivatsi/opinion-court/middleware"
	"github.com/ckchivatsi/opinion-court/urls"
	"github.com/ckchivatsi/opinion-court/views"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, renderer *views.Renderer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollsHandler := handlers.NewPollsHandler(db, cfg, renderer)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls pages, registered from the named routing table
	pages := map[string]http.HandlerFunc{
		urls.Index:   pollsHandler.Index,
		urls.Detail:  pollsHandler.Detail,
		urls.Results: pollsHandler.Results,
		urls.Vote:    pollsHandler.Vote,
	}
	for _, route := range urls.Routes {
		view, ok := pages[route.Name]
		if !ok {
			panic(fmt.Sprintf("router: no view for route %q", route.Name))
		}
		mux.HandleFunc(route.Method+" "+route.Pattern, middleware.WithLogging(view))
	}

	// Admin API (JSON, CORS enabled)
	api := http.NewServeMux()
	api.HandleFunc("POST /api/questions", middleware.WithLogging(adminHandler.CreateQuestion))
	api.HandleFunc("GET /api/questions/{question_id}", middleware.WithLogging(adminHandler.GetQuestion))
	api.HandleFunc("POST /api/questions/{question_id}/choices", middleware.WithLogging(adminHandler.AddChoice))
	mux.Handle("/api/", middleware.CORS(api))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, urls.MustReverse(urls.Index), http.StatusFound)
	})

	return mux
}
