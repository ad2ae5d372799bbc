// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateSignToken(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		salt      string
	}{
		{"standard", "req123", "secret-salt"},
		{"empty request id", "", "salt"},
		{"empty salt", "req456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := GenerateSignToken(tt.requestID, tt.salt)

			// Should not be empty
			if token == "" {
				t.Error("GenerateSignToken() returned empty string")
			}

			// Should be deterministic
			token2 := GenerateSignToken(tt.requestID, tt.salt)
			if token != token2 {
				t.Error("GenerateSignToken() is not deterministic")
			}

			// Different inputs should produce different tokens
			if tt.requestID != "" && tt.salt != "" {
				differentToken := GenerateSignToken(tt.requestID+"x", tt.salt)
				if token == differentToken {
					t.Error("GenerateSignToken() produced same token for different request IDs")
				}
			}

			// Should be URL-safe (no padding)
			if strings.Contains(token, "=") {
				t.Error("GenerateSignToken() contains padding characters")
			}
		})
	}
}

func TestValidateSignToken(t *testing.T) {
	requestID := "test-request-123"
	salt := "test-salt"
	validToken := GenerateSignToken(requestID, salt)

	tests := []struct {
		name      string
		requestID string
		token     string
		salt      string
		wantErr   bool
	}{
		{"valid token", requestID, validToken, salt, false},
		{"wrong token", requestID, "wrong-token", salt, true},
		{"wrong request id", "different-request", validToken, salt, true},
		{"wrong salt", requestID, validToken, "different-salt", true},
		{"empty token", requestID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignToken(tt.requestID, tt.token, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSignToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidSignToken {
				t.Errorf("ValidateSignToken() error = %v, want %v", err, ErrInvalidSignToken)
			}
		})
	}
}

func TestGenerateLinkSlug(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		salt      string
	}{
		{"standard", "req-abc-123", "slug-salt"},
		{"different request", "req-xyz-456", "slug-salt"},
		{"different salt", "req-abc-123", "other-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := GenerateLinkSlug(tt.requestID, tt.salt)

			// Should not be empty
			if slug == "" {
				t.Error("GenerateLinkSlug() returned empty string")
			}

			// Should be deterministic
			slug2 := GenerateLinkSlug(tt.requestID, tt.salt)
			if slug != slug2 {
				t.Error("GenerateLinkSlug() is not deterministic")
			}

			// Should be reasonably short
			if len(slug) > 15 {
				t.Errorf("GenerateLinkSlug() too long: %d chars", len(slug))
			}

			// Should be URL-safe (alphanumeric only)
			for _, c := range slug {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
					t.Errorf("GenerateLinkSlug() contains non-alphanumeric char: %c", c)
				}
			}
		})
	}

	// Different inputs should produce different slugs
	slug1 := GenerateLinkSlug("req1", "salt")
	slug2 := GenerateLinkSlug("req2", "salt")
	if slug1 == slug2 {
		t.Error("GenerateLinkSlug() produced same slug for different request IDs")
	}

	// The slug must not equal the token for the same request (different HMAC input)
	if GenerateLinkSlug("req1", "salt") == GenerateSignToken("req1", "salt") {
		t.Error("GenerateLinkSlug() collided with GenerateSignToken()")
	}
}
