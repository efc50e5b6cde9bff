// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, page, request, and response types.

# Domain Types

  - Question: poll prompt with a publish timestamp
  - Choice: selectable answer belonging to a Question, with a vote count

A Question is published once its PubDate is not in the future:

	q.IsPublished(time.Now())

WasPublishedRecently reports whether the question was published within
DefaultRecentWindow (one week). WasPublishedRecentlyWithin takes the window
explicitly:

	q.WasPublishedRecentlyWithin(now, models.RecentWindowDay)

# Page Types

Template data for the HTML views:

  - IndexPage: latest_question_list
  - DetailPage: question, choices, error message
  - ResultsPage: question, choices with tallies

# Request and Response Types

JSON types for the admin API:

  - CreateQuestionRequest / CreateQuestionResponse
  - AddChoiceRequest / AddChoiceResponse
  - QuestionAdminResponse
  - ErrorResponse
*/
package models
