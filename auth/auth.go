// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrNotAuthorized      = errors.New("not authorized")
	ErrAdminNotConfigured = errors.New("admin secret not set, admin functions cannot be used until set")
	ErrAdminSecretShort   = errors.New("admin secret too short, admin functions cannot be used until set")
)

// codePool is the alphanumeric sampling pool for public game codes and
// session secrets.
const codePool = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GameCodeLength is the length of a public game code.
const GameCodeLength = 8

// sessionSecretLength matches the long-key length of the session credential.
const sessionSecretLength = 64

// minAdminSecretLength is the floor below which the admin surface stays
// disabled.
const minAdminSecretLength = 10

// randomString samples length characters uniformly from codePool.
func randomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random string: %w", err)
	}
	for i := range b {
		b[i] = codePool[int(b[i])%len(codePool)]
	}
	return string(b), nil
}

// GenerateGameCode creates a short public code for a game. Uniqueness is the
// caller's problem; the store's unique index is the arbiter.
func GenerateGameCode() (string, error) {
	return randomString(GameCodeLength)
}

// GenerateSessionSecret creates the long half of a session credential.
func GenerateSessionSecret() (string, error) {
	return randomString(sessionSecretLength)
}

// HashSecret produces the HMAC-SHA256 digest of a session secret under the
// configured salt. Only this digest is stored.
func HashSecret(secret, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySecret checks a presented secret against a stored digest in constant
// time.
func VerifySecret(storedHash, secret, salt string) bool {
	return hmac.Equal([]byte(storedHash), []byte(HashSecret(secret, salt)))
}

// CheckAdminSecret validates a presented admin key against the configured
// secret. A missing or short configuration disables the admin surface
// entirely rather than failing open.
func CheckAdminSecret(configured, presented string) error {
	if configured == "" {
		return ErrAdminNotConfigured
	}
	if len(configured) < minAdminSecretLength {
		return ErrAdminSecretShort
	}
	if !hmac.Equal([]byte(configured), []byte(presented)) {
		return ErrNotAuthorized
	}
	return nil
}
