// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ckchivatsi/opinion-court/auth"
	"github.com/ckchivatsi/opinion-court/db"
	"github.com/ckchivatsi/opinion-court/middleware"
	"github.com/ckchivatsi/opinion-court/models"
	"github.com/ckchivatsi/opinion-court/urls"
)

// Vote handles POST /polls/{question_id}/vote/
// Redirects to the results page on success. A missing or foreign choice
// re-renders the detail page with an error message.
func (h *PollsHandler) Vote(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadQuestion(w, r, false)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderDetail(w, question, choices, models.NoChoiceMessage)
		return
	}

	choiceID, err := strconv.ParseInt(r.PostForm.Get("choice"), 10, 64)
	if err != nil {
		h.renderDetail(w, question, choices, models.NoChoiceMessage)
		return
	}

	err = db.IncrementVote(r.Context(), h.db, question.ID, choiceID)
	if errors.Is(err, db.ErrNotFound) {
		h.renderDetail(w, question, choices, models.NoChoiceMessage)
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "question_id", question.ID)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	slog.Info("vote recorded",
		"question_id", question.ID,
		"choice_id", choiceID,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
	)

	// Redirect after POST
	http.Redirect(w, r, urls.MustReverse(urls.Results, question.ID), http.StatusFound)
}
