// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key and hashing utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(questionID, salt)
	err := auth.ValidateAdminKey(questionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same question ID and salt always produce the same key. This allows
validation without storing the key in the database.

A valid key lets its holder add choices to the question and preview it
before its publish date.

# Admin Token

Creating questions needs the server-wide token from configuration, sent as
a bearer token:

	err := auth.ValidateAdminToken(r.Header.Get("Authorization"), cfg.AdminToken)

An unset token rejects every request.

# IP Hashing

Vote logs record a salted hash instead of the client address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
