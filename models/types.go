// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Windows for WasPublishedRecently
const (
	RecentWindowDay  = 24 * time.Hour
	RecentWindowWeek = 7 * 24 * time.Hour
)

// DefaultRecentWindow is used by WasPublishedRecently
const DefaultRecentWindow = RecentWindowWeek

// DefaultIndexLimit is how many questions the index page lists
const DefaultIndexLimit = 5

// NoChoiceMessage is shown on the detail page when a vote has no valid choice
const NoChoiceMessage = "You didn't select a choice."

// Domain types

type Question struct {
	ID           int64     `json:"question_id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

func (q Question) String() string {
	return q.QuestionText
}

// IsPublished reports whether the question is visible at now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently uses DefaultRecentWindow.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.WasPublishedRecentlyWithin(now, DefaultRecentWindow)
}

// WasPublishedRecentlyWithin reports whether now-window < PubDate <= now.
func (q Question) WasPublishedRecentlyWithin(now time.Time, window time.Duration) bool {
	return q.PubDate.After(now.Add(-window)) && q.IsPublished(now)
}

type Choice struct {
	ID         int64  `json:"choice_id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

func (c Choice) String() string {
	return c.ChoiceText
}

// Page types (template data)

type IndexPage struct {
	LatestQuestionList []Question
}

type DetailPage struct {
	Question     Question
	Choices      []Choice
	ErrorMessage string
}

type ResultsPage struct {
	Question   Question
	Choices    []Choice
	TotalVotes int
}

// Request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID int64  `json:"question_id"`
	AdminKey   string `json:"admin_key"`
}

type AddChoiceResponse struct {
	ChoiceID int64 `json:"choice_id"`
}

type QuestionAdminResponse struct {
	Question             Question `json:"question"`
	Choices              []Choice `json:"choices"`
	Published            bool     `json:"published"`
	WasPublishedRecently bool     `json:"was_published_recently"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
