package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "")

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" || claims.Subject != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("expected exp claim")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h window, got %v", got)
	}
}

func TestTokenService_ZeroTTLHasNoExpiry(t *testing.T) {
	svc := NewTokenService("secret", 0, "")

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no exp claim, got %v", claims.ExpiresAt)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, "")
	svc.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return time.Now().UTC() }
	if _, err := svc.Verify(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestTokenService_RejectsOtherSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, "")
	verifier := NewTokenService("secret-b", time.Hour, "")

	token, err := issuer.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestTokenService_RejectsTamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "")
	token, _ := svc.Issue("u1", "user@example.com")
	parts := strings.Split(token, ".")
	other, _ := svc.Issue("u2", "other@example.com")
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	if _, err := svc.Verify(forged); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "")
	for _, tok := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrJWTInvalid) {
			t.Fatalf("expected ErrJWTInvalid for %q, got %v", tok, err)
		}
	}
}

func TestTokenService_RejectsEmptySecret(t *testing.T) {
	svc := NewTokenService("", time.Hour, "")
	if _, err := svc.Issue("u1", "user@example.com"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on empty secret, got %v", err)
	}
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "")
	now := time.Now().UTC()
	claims := Claims{
		UserID: "u1",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong issuer, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithm(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, "")
	claims := Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: defaultIssuer, Subject: "u1"},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for HS512 token, got %v", err)
	}
}
