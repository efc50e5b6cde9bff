// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ckchivatsi/opinion-court/auth"
	"github.com/ckchivatsi/opinion-court/cliparse"
	"github.com/ckchivatsi/opinion-court/db"
	"github.com/ckchivatsi/opinion-court/models"
	"github.com/ckchivatsi/opinion-court/urls"
	"github.com/ckchivatsi/opinion-court/views"
)

// NotFoundMessage is the body of 404 responses from the polls pages
const NotFoundMessage = "No Question matches the given query."

type PollsHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	views *views.Renderer
	now   func() time.Time
}

func NewPollsHandler(db *sql.DB, cfg cliparse.Config, renderer *views.Renderer) *PollsHandler {
	return &PollsHandler{db: db, cfg: cfg, views: renderer, now: time.Now}
}

// Index handles GET /polls/
func (h *PollsHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := db.PublishedQuestions(r.Context(), h.db, h.now(), h.cfg.IndexLimit)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, views.IndexPage, models.IndexPage{
		LatestQuestionList: questions,
	})
}

// Detail handles GET /polls/{question_id}/
func (h *PollsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadQuestion(w, r, true)
	if !ok {
		return
	}

	h.renderDetail(w, question, choices, "")
}

// loadQuestion resolves the question_id path value to a question visible to
// visitors (published and with at least one choice) and its choices, writing
// a 404 or 500 response and returning false otherwise. With allowPreview, a
// valid X-Admin-Key unlocks the question whatever its state.
func (h *PollsHandler) loadQuestion(w http.ResponseWriter, r *http.Request, allowPreview bool) (models.Question, []models.Choice, bool) {
	questionID, ok := urls.ParseQuestionID(r.PathValue(urls.QuestionIDParam))
	if !ok {
		http.Error(w, NotFoundMessage, http.StatusNotFound)
		return models.Question{}, nil, false
	}

	preview := allowPreview &&
		auth.ValidateAdminKey(questionID, r.Header.Get("X-Admin-Key"), h.cfg.AdminKeySalt) == nil

	var question models.Question
	var err error
	if preview {
		question, err = db.GetQuestion(r.Context(), h.db, questionID)
	} else {
		question, err = db.GetPublishedQuestion(r.Context(), h.db, questionID, h.now())
	}
	if errors.Is(err, db.ErrNotFound) {
		// Unpublished and empty questions look exactly like missing ones
		http.Error(w, NotFoundMessage, http.StatusNotFound)
		return models.Question{}, nil, false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return models.Question{}, nil, false
	}

	choices, err := db.ListChoices(r.Context(), h.db, questionID)
	if err != nil {
		slog.Error("failed to list choices", "error", err, "question_id", questionID)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return models.Question{}, nil, false
	}

	if preview {
		slog.Info("admin preview",
			"question_id", questionID,
			"published", question.IsPublished(h.now()),
			"choices", len(choices),
		)
	}

	return question, choices, true
}

func (h *PollsHandler) renderDetail(w http.ResponseWriter, question models.Question, choices []models.Choice, errorMessage string) {
	h.render(w, http.StatusOK, views.DetailPage, models.DetailPage{
		Question:     question,
		Choices:      choices,
		ErrorMessage: errorMessage,
	})
}

func (h *PollsHandler) render(w http.ResponseWriter, statusCode int, page string, data any) {
	if err := h.views.Render(w, statusCode, page, data); err != nil {
		slog.Error("failed to render page", "error", err, "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
