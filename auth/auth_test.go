// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"testing"
)

func TestGenerateJoinCode(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"default length", 6},
		{"short", 4},
		{"long", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateJoinCode(tt.length)
			if err != nil {
				t.Fatalf("GenerateJoinCode() error = %v", err)
			}
			if len(code) != tt.length {
				t.Errorf("GenerateJoinCode() length = %d, want %d", len(code), tt.length)
			}
			// Verify it's uppercase alphanumeric
			for _, c := range code {
				if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')) {
					t.Errorf("GenerateJoinCode() contains invalid char: %c", c)
				}
			}
		})
	}

	// Test randomness - a batch of codes should not be all identical
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, _ := GenerateJoinCode(6)
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("GenerateJoinCode() produced identical codes (extremely unlikely)")
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC123"},
		{"  XyZ9  ", "XYZ9"},
		{"PYTHON", "PYTHON"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateUserToken(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		salt   string
	}{
		{"standard", 42, "secret-salt"},
		{"first user", 1, "salt"},
		{"empty salt", 7, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := GenerateUserToken(tt.userID, tt.salt)

			// Should not be empty
			if token == "" {
				t.Error("GenerateUserToken() returned empty string")
			}

			// Should be deterministic
			if token != GenerateUserToken(tt.userID, tt.salt) {
				t.Error("GenerateUserToken() is not deterministic")
			}

			// Different users should produce different tokens
			if token == GenerateUserToken(tt.userID+1, tt.salt) {
				t.Error("GenerateUserToken() produced same token for different users")
			}

			// Should be URL-safe (no padding)
			for _, c := range token {
				if c == '=' || c == '+' || c == '/' {
					t.Errorf("GenerateUserToken() contains non URL-safe char: %c", c)
				}
			}
		})
	}
}

func TestValidateUserToken(t *testing.T) {
	salt := "test-salt"
	token := GenerateUserToken(5, salt)

	tests := []struct {
		name    string
		userID  int64
		token   string
		salt    string
		wantErr bool
	}{
		{"valid token", 5, token, salt, false},
		{"wrong user", 6, token, salt, true},
		{"wrong salt", 5, token, "other-salt", true},
		{"empty token", 5, "", salt, true},
		{"tampered token", 5, token + "x", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserToken(tt.userID, tt.token, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidUserToken {
				t.Errorf("ValidateUserToken() error = %v, want ErrInvalidUserToken", err)
			}
		})
	}
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{" 3 ", 3, false},
		{"0", 0, true},
		{"-4", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseUserID(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUserID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUserID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
