// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/ckchivatsi/opinion-court/models"
	"github.com/ckchivatsi/opinion-court/views"
)

// Results handles GET /polls/{question_id}/results/
// Same visibility rules as Detail
func (h *PollsHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadQuestion(w, r, true)
	if !ok {
		return
	}

	total := 0
	for _, c := range choices {
		total += c.Votes
	}

	h.render(w, http.StatusOK, views.ResultsPage, models.ResultsPage{
		Question:   question,
		Choices:    choices,
		TotalVotes: total,
	})
}
