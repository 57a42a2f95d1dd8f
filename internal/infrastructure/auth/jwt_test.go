package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	v := NewTokenVerifier(&key.PublicKey, "roster", "roster")

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "1b671a64-40d5-491e-99b0-da01ff1f3341",
		Issuer:    "roster",
		Audience:  jwt.ClaimStrings{"roster"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	subject, err := v.Verify(signToken(t, key, claims))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != claims.Subject {
		t.Fatalf("subject = %q, want %q", subject, claims.Subject)
	}
}

func TestVerifyRejects(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	v := NewTokenVerifier(&key.PublicKey, "roster", "roster")

	now := time.Now()
	base := jwt.RegisteredClaims{
		Subject:   "1b671a64-40d5-491e-99b0-da01ff1f3341",
		Issuer:    "roster",
		Audience:  jwt.ClaimStrings{"roster"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	expired := base
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Hour))
	wrongIssuer := base
	wrongIssuer.Issuer = "someone-else"
	noSubject := base
	noSubject.Subject = ""

	cases := []struct {
		name  string
		token string
	}{
		{"wrong key", signToken(t, otherKey, base)},
		{"expired", signToken(t, key, expired)},
		{"wrong issuer", signToken(t, key, wrongIssuer)},
		{"no subject", signToken(t, key, noSubject)},
		{"garbage", "not-a-token"},
	}
	for _, tc := range cases {
		if _, err := v.Verify(tc.token); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
