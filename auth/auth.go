// Copyright (c) 2025 Ronald Muchiri.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSignToken = errors.New("invalid sign token")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSignToken creates an HMAC-based token authorizing access to a sign
// request. This is deterministic and verifiable, so the token never needs to
// be stored.
func GenerateSignToken(requestID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(requestID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner links
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSignToken checks the provided token against the sign request ID
func ValidateSignToken(requestID, token, salt string) error {
	expected := GenerateSignToken(requestID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidSignToken
	}
	return nil
}

// GenerateLinkSlug creates a short, deterministic URL slug for a sign request
// Uses HMAC for determinism and base62 encoding for URL-friendliness
func GenerateLinkSlug(requestID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("link:" + requestID))
	sum := h.Sum(nil)

	// First 8 bytes keep the slug short
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
// This creates URL-friendly slugs without special characters
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Convert bytes to a big integer
	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	// Convert to base62
	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	// Reverse the string
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
