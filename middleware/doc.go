// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an X-Request-ID: the incoming header if
present, otherwise a fresh UUID. The id is echoed in the response.

# CORS Middleware

The admin API is wrapped with rs/cors:

	mux.Handle("/api/", middleware.CORS(api))

Any origin may call it. Credentials are not allowed; callers authenticate
with the Authorization and X-Admin-Key headers.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most MaxJSONBodyBytes):

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

The port is stripped from RemoteAddr, including bracketed IPv6 addresses.

Vote logs record a salted hash of it.
*/
package middleware
