package paygate

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.com",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return signed
}

func TestCredentialExpiresWithin(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		token  string
		window time.Duration
		want   bool
	}{
		{"expiring soon", mintToken(t, now.Add(10*time.Second)), 30 * time.Second, true},
		{"already expired", mintToken(t, now.Add(-time.Minute)), 30 * time.Second, true},
		{"plenty of life left", mintToken(t, now.Add(time.Hour)), 30 * time.Second, false},
		{"window disabled", mintToken(t, now.Add(10*time.Second)), 0, false},
		{"opaque token", "tok1", 30 * time.Second, false},
		{"empty token", "", 30 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := credentialExpiresWithin(tc.token, tc.window, now); got != tc.want {
				t.Fatalf("credentialExpiresWithin(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestNoExpClaimIsOpaque(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "a@b.com"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if credentialExpiresWithin(signed, time.Hour, time.Now()) {
		t.Fatal("a token without exp must never trigger proactive renewal")
	}
}
