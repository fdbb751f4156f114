package jwtutil

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer mints opaque session tokens. Each token is an HS256-signed JWT
// around a random id; the claims are never read back, the compact string
// itself is the bearer secret looked up in the session store.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (s *Signer) NewToken() (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("token secret is empty")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}
