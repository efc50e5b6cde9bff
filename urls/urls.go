// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package urls

import (
	"fmt"
	"strconv"
	"strings"
)

// Route names
const (
	Index   = "polls:index"
	Detail  = "polls:detail"
	Results = "polls:results"
	Vote    = "polls:vote"
)

// QuestionIDParam is the path wildcard carrying the question id
const QuestionIDParam = "question_id"

// Route is one entry of the polls routing table.
type Route struct {
	Name    string
	Method  string
	Pattern string // http.ServeMux pattern path
	path    string // format string for Reverse
}

// Routes is the polls routing table, in registration order.
var Routes = []Route{
	{Name: Index, Method: "GET", Pattern: "/polls/{$}", path: "/polls/"},
	{Name: Detail, Method: "GET", Pattern: "/polls/{question_id}/{$}", path: "/polls/%d/"},
	{Name: Results, Method: "GET", Pattern: "/polls/{question_id}/results/{$}", path: "/polls/%d/results/"},
	{Name: Vote, Method: "POST", Pattern: "/polls/{question_id}/vote/{$}", path: "/polls/%d/vote/"},
}

// Lookup returns the route registered under name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Reverse builds the path for a named route.
func Reverse(name string, args ...int64) (string, error) {
	r, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("no route named %q", name)
	}

	want := strings.Count(r.path, "%d")
	if len(args) != want {
		return "", fmt.Errorf("route %q takes %d arguments, got %d", name, want, len(args))
	}

	vals := make([]any, len(args))
	for i, a := range args {
		if a < 0 {
			return "", fmt.Errorf("route %q: negative id %d", name, a)
		}
		vals[i] = a
	}

	return fmt.Sprintf(r.path, vals...), nil
}

// MustReverse is Reverse for names and arities known to be valid.
func MustReverse(name string, args ...int64) string {
	path, err := Reverse(name, args...)
	if err != nil {
		panic(err)
	}
	return path
}

// ParseQuestionID validates a question_id path value against [0-9]+.
func ParseQuestionID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
