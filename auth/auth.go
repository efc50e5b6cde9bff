// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidAdminToken = errors.New("invalid admin token")
)

// GenerateAdminKey creates an HMAC-based admin key for a question
// This is deterministic and verifiable
func GenerateAdminKey(questionID int64, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("question:" + strconv.FormatInt(questionID, 10)))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the question
func ValidateAdminKey(questionID int64, adminKey, salt string) error {
	if adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(questionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// ValidateAdminToken checks an Authorization header against the server's
// admin token. An empty expected token rejects every request.
func ValidateAdminToken(authorization, expected string) error {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || token == "" || expected == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits)
	return hex.EncodeToString(sum[:8])
}
