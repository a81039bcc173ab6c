// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewToken generates an unguessable token: 32 random bytes keyed through
// HMAC-SHA256 with the session secret, hex encoded. Used for CSRF tokens.
func NewToken(secret string) (string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("generating token seed: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(seed)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// TokensEqual compares two tokens in constant time.
func TokensEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
