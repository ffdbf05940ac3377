package util

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("principal-123", "user-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateJWT(token, "user-secret")
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Subject != "principal-123" {
		t.Fatalf("expected subject principal-123, got %s", claims.Subject)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	// A user token must never verify against the admin secret, and vice versa.
	token, err := GenerateJWT("principal-123", "user-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ValidateJWT(token, "admin-secret"); err == nil {
		t.Fatal("expected validation to fail under the other kind's secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("principal-123", "user-secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ValidateJWT(token, "user-secret"); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}

func TestValidateJWTMalformed(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", "user-secret"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
