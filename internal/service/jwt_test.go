package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT(testSecret)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWT() returned empty token")
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("ParseJWT() = %d, want 42", userID)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	InitJWT(testSecret)

	// sign a token that expired an hour ago with the server's secret
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-26 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = ParseJWT(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ParseJWT(expired) error = %v, want ErrTokenExpired", err)
	}
}

func TestParseJWT_Malformed(t *testing.T) {
	InitJWT(testSecret)

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseJWT(tc.token); !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("ParseJWT(%q) error = %v, want ErrTokenMalformed", tc.token, err)
			}
		})
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	InitJWT("other-secret")
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	InitJWT(testSecret)
	if _, err := ParseJWT(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("ParseJWT(wrong secret) error = %v, want ErrTokenMalformed", err)
	}
}

func TestParseJWT_NonNumericSubject(t *testing.T) {
	InitJWT(testSecret)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseJWT(token); !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("ParseJWT(non-numeric sub) error = %v, want ErrTokenMalformed", err)
	}
}
