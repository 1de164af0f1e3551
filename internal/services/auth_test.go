package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
)

func testAuthService(t *testing.T, secret string, ttl time.Duration) AuthService {
	t.Helper()
	log, err := logger.New("debug")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewAuthService(nil, log, nil, nil, secret, ttl)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := testAuthService(t, "test-secret", 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateSessionToken(userID)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	parsed, err := svc.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if parsed != userID {
		t.Fatalf("parsed user id = %s, want %s", parsed, userID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	issuer := testAuthService(t, "secret-a", time.Hour)
	verifier := testAuthService(t, "secret-b", time.Hour)

	token, err := issuer.GenerateSessionToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if _, err := verifier.ParseSessionToken(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	svc := testAuthService(t, "test-secret", -time.Minute)

	token, err := svc.GenerateSessionToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if _, err := svc.ParseSessionToken(token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	svc := testAuthService(t, "test-secret", time.Hour)
	if _, err := svc.ParseSessionToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}

func TestTaggedErrors(t *testing.T) {
	if !errors.Is(validationError("bad input"), ErrValidation) {
		t.Fatal("validation error lost its tag")
	}
	if !errors.Is(notFoundError("missing"), ErrNotFound) {
		t.Fatal("not-found error lost its tag")
	}
	if !errors.Is(upstreamError("down", nil), ErrUpstream) {
		t.Fatal("upstream error lost its tag")
	}
	if errors.Is(validationError("bad input"), ErrNotFound) {
		t.Fatal("tags should not cross-match")
	}
}
