// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ckchivatsi/opinion-court/auth"
	"github.com/ckchivatsi/opinion-court/models"
)

// captureLogs routes the default logger into a buffer of JSON lines for the
// duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

// completedRecord returns the "request completed" log entry
func completedRecord(t *testing.T, logs *bytes.Buffer) map[string]any {
	t.Helper()

	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("Bad log line %q: %v", line, err)
		}
		if rec["msg"] == "request completed" {
			return rec
		}
	}
	t.Fatalf("No completion record in logs: %s", logs.String())
	return nil
}

func TestWithLogging_PageResponses(t *testing.T) {
	testCases := []struct {
		name    string
		method  string
		path    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name:   "index page",
			method: "GET",
			path:   "/polls/",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<h1>Latest</h1>"))
			},
			status: http.StatusOK,
		},
		{
			name:   "vote redirect",
			method: "POST",
			path:   "/polls/3/vote/",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/polls/3/results/", http.StatusFound)
			},
			status: http.StatusFound,
		},
		{
			name:   "unpublished question",
			method: "GET",
			path:   "/polls/9/",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "No Question matches the given query.", http.StatusNotFound)
			},
			status: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			WithLogging(tc.handler)(w, req)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}

			rec := completedRecord(t, logs)
			if got, _ := rec["status"].(float64); int(got) != tc.status {
				t.Errorf("Expected logged status %d, got %v", tc.status, rec["status"])
			}
			if rec["path"] != tc.path || rec["method"] != tc.method {
				t.Errorf("Unexpected request fields in log: %v", rec)
			}
			if rec["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Errorf("Logged request id %v does not match header %q", rec["request_id"], w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls/", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected UUID request id, got %q", id)
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		w := httptest.NewRecorder()

		handler(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "upstream-id" {
			t.Errorf("Expected propagated request id, got %q", got)
		}
	})
}

func TestAdminResponses(t *testing.T) {
	t.Run("question created", func(t *testing.T) {
		w := httptest.NewRecorder()

		JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{QuestionID: 7, AdminKey: "k"})

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		if body := strings.TrimSpace(w.Body.String()); body != `{"question_id":7,"admin_key":"k"}` {
			t.Errorf("Unexpected body %s", body)
		}
	})

	t.Run("rejected admin key", func(t *testing.T) {
		w := httptest.NewRecorder()

		ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")

		var resp models.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if w.Code != http.StatusUnauthorized || resp.Error != "Unauthorized" || resp.Message != "Invalid admin key" {
			t.Errorf("Unexpected error response %d %+v", w.Code, resp)
		}
	})
}

func TestParseJSONBody(t *testing.T) {
	t.Run("question with pub_date", func(t *testing.T) {
		body := `{"question_text":"What's up?","pub_date":"2024-05-01T10:00:00+02:00"}`
		req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(body))
		w := httptest.NewRecorder()

		var parsed models.CreateQuestionRequest
		if err := ParseJSONBody(w, req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if parsed.QuestionText != "What's up?" {
			t.Errorf("Unexpected question_text %q", parsed.QuestionText)
		}
		if parsed.PubDate == nil || !parsed.PubDate.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected pub_date %v", parsed.PubDate)
		}
	})

	t.Run("question without pub_date", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(`{"question_text":"Now"}`))
		w := httptest.NewRecorder()

		var parsed models.CreateQuestionRequest
		if err := ParseJSONBody(w, req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.PubDate != nil {
			t.Errorf("Expected nil pub_date, got %v", parsed.PubDate)
		}
	})

	t.Run("malformed choice", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions/1/choices", strings.NewReader(`{"choice_text":`))
		w := httptest.NewRecorder()

		var parsed models.AddChoiceRequest
		if err := ParseJSONBody(w, req, &parsed); err == nil {
			t.Error("Expected error for truncated JSON")
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		text := strings.Repeat("x", MaxJSONBodyBytes)
		req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(`{"question_text":"`+text+`"}`))
		w := httptest.NewRecorder()

		var parsed models.CreateQuestionRequest
		err := ParseJSONBody(w, req, &parsed)

		var maxErr *http.MaxBytesError
		if !errors.As(err, &maxErr) {
			t.Errorf("Expected *http.MaxBytesError, got %v", err)
		}
	})
}

func TestCORS(t *testing.T) {
	var reached bool
	api := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight for add choice", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("OPTIONS", "/api/questions/1/choices", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type,x-admin-key")
		w := httptest.NewRecorder()

		api.ServeHTTP(w, req)

		if reached {
			t.Error("Preflight should not reach the admin handler")
		}
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if !strings.Contains(strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "x-admin-key") {
			t.Errorf("Expected X-Admin-Key to be allowed, got %q", w.Header().Get("Access-Control-Allow-Headers"))
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Admin API must not allow credentialed cross-origin requests")
		}
	})

	t.Run("inspect question from another origin", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("GET", "/api/questions/1", nil)
		req.Header.Set("Origin", "https://admin.example.com")
		w := httptest.NewRecorder()

		api.ServeHTTP(w, req)

		if !reached {
			t.Error("Expected admin handler to run")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "https://admin.example.com" {
			t.Error("Expected Access-Control-Allow-Origin to reflect request origin")
		}
		exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
		if !strings.Contains(exposed, strings.ToLower(RequestIDHeader)) {
			t.Error("Expected request id to be exposed")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Admin API must not allow credentialed cross-origin requests")
		}
	})

	t.Run("same origin tooling", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("GET", "/api/questions/1", nil)
		w := httptest.NewRecorder()

		api.ServeHTTP(w, req)

		if !reached {
			t.Error("Expected admin handler to run")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("Expected no CORS headers without Origin")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"voter on IPv4", "198.51.100.7:50211", "", "", "198.51.100.7"},
		{"voter on bracketed IPv6", "[2001:db8::42]:50211", "", "", "2001:db8::42"},
		{"loopback IPv6", "[::1]:8080", "", "", "::1"},
		{"bracketed IPv6 without port", "[2001:db8::42]", "", "", "2001:db8::42"},
		{"bare IPv6 without port", "2001:db8::42", "", "", "2001:db8::42"},
		{"behind proxy chain", "10.0.0.2:443", "203.0.113.9, 10.0.0.1", "", "203.0.113.9"},
		{"proxy chain with padding", "10.0.0.2:443", " 203.0.113.9 ,10.0.0.1", "", "203.0.113.9"},
		{"IPv6 through proxy", "10.0.0.2:443", "2001:db8::7", "", "2001:db8::7"},
		{"nginx real ip", "10.0.0.2:443", "", "192.0.2.80", "192.0.2.80"},
		{"empty forwarded entry", "10.0.0.2:443", " ,10.0.0.1", "192.0.2.80", "192.0.2.80"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/polls/1/vote/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			if got := GetClientIP(req); got != tc.want {
				t.Errorf("Expected IP %q, got %q", tc.want, got)
			}
		})
	}
}

// The vote log hashes the client IP, so the source port must not leak into
// the hash
func TestGetClientIP_StableVoteHash(t *testing.T) {
	const salt = "test-admin-salt"

	hashFor := func(remoteAddr string) string {
		req := httptest.NewRequest("POST", "/polls/1/vote/", nil)
		req.RemoteAddr = remoteAddr
		return auth.HashIP(GetClientIP(req), salt)
	}

	if hashFor("[2001:db8::42]:50211") != hashFor("[2001:db8::42]:61000") {
		t.Error("Same IPv6 voter hashed differently across ports")
	}
	if hashFor("198.51.100.7:50211") != hashFor("198.51.100.7:61000") {
		t.Error("Same IPv4 voter hashed differently across ports")
	}
	if hashFor("198.51.100.7:50211") == hashFor("198.51.100.8:50211") {
		t.Error("Different voters share a hash")
	}
}
