// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides key generation and credential verification.

# Game Codes

Public game codes are 8 characters sampled from an alphanumeric pool:

	code, err := auth.GenerateGameCode()

Codes are not guaranteed unique at generation time; the game table's unique
index is the arbiter and callers retry on collision.

# Session Secrets

The long half of a session credential is a 64-character random string:

	secret, err := auth.GenerateSessionSecret()

Secrets are never stored. The database keeps only an HMAC-SHA256 digest:

	hash := auth.HashSecret(secret, salt)
	ok := auth.VerifySecret(hash, presented, salt)

Verification is constant time.

# Admin Secret

The admin surface is gated on a configured shared secret:

	err := auth.CheckAdminSecret(cfg.AdminSecret, presented)

A missing configuration or one shorter than 10 characters disables admin
functions rather than failing open.
*/
package auth
