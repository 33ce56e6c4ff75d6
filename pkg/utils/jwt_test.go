package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("7d0f6f7e-1f7c-4a3e-9a52-8c1b9f0e2a11", "authenticated", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "7d0f6f7e-1f7c-4a3e-9a52-8c1b9f0e2a11" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Role != "authenticated" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("one")
	token, err := GenerateJWT("user", "authenticated", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	InitJWT("two")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateJWT("user", "authenticated", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseJWTSubjectFallback(t *testing.T) {
	InitJWT("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "sub-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseJWT(signed)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != "sub-user" {
		t.Errorf("UserID = %q, want sub-user", claims.UserID)
	}
}
