// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ckchivatsi/opinion-court/auth"
	"github.com/ckchivatsi/opinion-court/cliparse"
	"github.com/ckchivatsi/opinion-court/db"
	"github.com/ckchivatsi/opinion-court/middleware"
	"github.com/ckchivatsi/opinion-court/models"
	"github.com/ckchivatsi/opinion-court/urls"
)

// Text fields are VARCHAR(200) in PostgreSQL, counted in characters
const maxTextLength = 200

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, now: time.Now}
}

// CreateQuestion handles POST /api/questions
// Requires "Authorization: Bearer <admin token>"
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminToken(r.Header.Get("Authorization"), h.cfg.AdminToken); err != nil {
		slog.Warn("question creation rejected", "remote_ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return
	}

	var req models.CreateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.QuestionText)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text must be at most 200 characters")
		return
	}

	pubDate := h.now()
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}

	questionID, err := db.CreateQuestion(r.Context(), h.db, text, pubDate)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "pub_date", pubDate.UTC())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
		AdminKey:   auth.GenerateAdminKey(questionID, h.cfg.AdminKeySalt),
	})
}

// AddChoice handles POST /api/questions/{question_id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AddChoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	text := strings.TrimSpace(req.ChoiceText)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required")
		return
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text must be at most 200 characters")
		return
	}

	if _, err := db.GetQuestion(r.Context(), h.db, questionID); err != nil {
		h.questionError(w, err, questionID)
		return
	}

	choiceID, err := db.AddChoice(r.Context(), h.db, questionID, text)
	if err != nil {
		slog.Error("failed to insert choice", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", choiceID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{
		ChoiceID: choiceID,
	})
}

// GetQuestion handles GET /api/questions/{question_id}
// Returns the question whether or not it is published
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	question, err := db.GetQuestion(r.Context(), h.db, questionID)
	if err != nil {
		h.questionError(w, err, questionID)
		return
	}

	choices, err := db.ListChoices(r.Context(), h.db, questionID)
	if err != nil {
		slog.Error("failed to list choices", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := h.now()
	middleware.JSONResponse(w, http.StatusOK, models.QuestionAdminResponse{
		Question:             question,
		Choices:              choices,
		Published:            question.IsPublished(now),
		WasPublishedRecently: question.WasPublishedRecentlyWithin(now, h.cfg.RecentWindow),
	})
}

// authorize parses the question id and checks the X-Admin-Key header
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) (int64, bool) {
	questionID, ok := urls.ParseQuestionID(r.PathValue(urls.QuestionIDParam))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return 0, false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(questionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return 0, false
	}

	return questionID, true
}

// decodeBody parses the JSON body, answering 413 or 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := middleware.ParseJSONBody(w, r, v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	return false
}

func (h *AdminHandler) questionError(w http.ResponseWriter, err error, questionID int64) {
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	slog.Error("failed to query question", "error", err, "question_id", questionID)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
