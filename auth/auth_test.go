// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateGameCode(t *testing.T) {
	code, err := GenerateGameCode()
	if err != nil {
		t.Fatalf("Failed to generate game code: %v", err)
	}
	if len(code) != GameCodeLength {
		t.Errorf("Expected %d-char code, got %d", GameCodeLength, len(code))
	}
	for _, c := range code {
		if !strings.ContainsRune(codePool, c) {
			t.Errorf("Code contains character outside pool: %q", c)
		}
	}
}

func TestGenerateGameCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateGameCode()
		if err != nil {
			t.Fatalf("Failed to generate game code: %v", err)
		}
		if seen[code] {
			t.Errorf("Duplicate code generated: %s", code)
		}
		seen[code] = true
	}
}

func TestGenerateSessionSecret(t *testing.T) {
	secret, err := GenerateSessionSecret()
	if err != nil {
		t.Fatalf("Failed to generate session secret: %v", err)
	}
	if len(secret) != sessionSecretLength {
		t.Errorf("Expected %d-char secret, got %d", sessionSecretLength, len(secret))
	}
}

func TestHashSecretVerify(t *testing.T) {
	hash := HashSecret("my-secret", "salt")

	if !VerifySecret(hash, "my-secret", "salt") {
		t.Error("Expected matching secret to verify")
	}
	if VerifySecret(hash, "wrong-secret", "salt") {
		t.Error("Expected wrong secret to fail")
	}
	if VerifySecret(hash, "my-secret", "other-salt") {
		t.Error("Expected wrong salt to fail")
	}
	if hash == HashSecret("my-secret", "other-salt") {
		t.Error("Expected different salts to produce different digests")
	}
}

func TestCheckAdminSecret(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		presented  string
		wantErr    error
	}{
		{"not configured", "", "anything", ErrAdminNotConfigured},
		{"too short", "short", "short", ErrAdminSecretShort},
		{"wrong key", "a-long-enough-secret", "wrong", ErrNotAuthorized},
		{"empty key", "a-long-enough-secret", "", ErrNotAuthorized},
		{"match", "a-long-enough-secret", "a-long-enough-secret", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAdminSecret(tt.configured, tt.presented)
			if err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
