package utils

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestBearerTokenRoundTrip(t *testing.T) {
	identity := &Identity{ID: "user_1", Email: "alice@example.com", Name: "Alice"}

	token, err := SignBearerToken(identity, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignBearerToken: %v", err)
	}

	got, err := ValidateBearerToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateBearerToken: %v", err)
	}
	if got.ID != identity.ID || got.Email != identity.Email || got.Name != identity.Name {
		t.Errorf("identity diverged: %+v vs %+v", got, identity)
	}
}

func TestValidateBearerTokenRejectsExpired(t *testing.T) {
	identity := &Identity{ID: "user_1", Email: "alice@example.com"}

	token, err := SignBearerToken(identity, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("SignBearerToken: %v", err)
	}

	if _, err := ValidateBearerToken(token, testSecret); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateBearerTokenRejectsWrongSecret(t *testing.T) {
	identity := &Identity{ID: "user_1", Email: "alice@example.com"}

	token, err := SignBearerToken(identity, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignBearerToken: %v", err)
	}

	if _, err := ValidateBearerToken(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateBearerTokenRejectsMissingSubject(t *testing.T) {
	token, err := SignBearerToken(&Identity{Email: "nobody@example.com"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("SignBearerToken: %v", err)
	}

	if _, err := ValidateBearerToken(token, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty subject, got %v", err)
	}
}

func TestValidateBearerTokenRejectsEmptyAndGarbage(t *testing.T) {
	if _, err := ValidateBearerToken("", testSecret); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token: expected ErrMissingToken, got %v", err)
	}
	if _, err := ValidateBearerToken("not.a.jwt", testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"", ""},
		{"abc123", ""},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		if got := ExtractTokenFromHeader(tc.header); got != tc.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
