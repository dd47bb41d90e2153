// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	ErrInvalidUserToken = errors.New("invalid user token")
	ErrInvalidUserID    = errors.New("invalid user id")
)

const joinCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateJoinCode creates a random uppercase alphanumeric code of the
// given length using crypto/rand.
func GenerateJoinCode(length int) (string, error) {
	max := big.NewInt(int64(len(joinCodeChars)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		b[i] = joinCodeChars[n.Int64()]
	}
	return string(b), nil
}

// NormalizeCode canonicalises user-entered join codes
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateUserToken creates an HMAC-based token binding a user id.
// This is deterministic and verifiable
func GenerateUserToken(userID int64, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strconv.FormatInt(userID, 10)))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateUserToken checks if the provided token was issued for the user
func ValidateUserToken(userID int64, token, salt string) error {
	expected := GenerateUserToken(userID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidUserToken
	}
	return nil
}

// ParseUserID parses a positive user id from a header value
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}
