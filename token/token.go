// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package token issues and checks the session tokens handed out at
// login.  Tokens are HS256-signed JWTs carrying the user's ID, email,
// and role.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-cap/access"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long a token is valid if the issuer does not say.
const DefaultTTL = 24 * time.Hour

// Claims are the contents of a token.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	// Secret is the HMAC key.  It must not be empty.
	Secret []byte

	// TTL is the lifetime of new tokens.  Zero means DefaultTTL.
	TTL time.Duration

	// Clock is the time source.  nil means the real clock.
	Clock clock.Clock
}

func (iss *Issuer) now() time.Time {
	if iss.Clock == nil {
		return time.Now()
	}
	return iss.Clock.Now()
}

func (iss *Issuer) ttl() time.Duration {
	if iss.TTL == 0 {
		return DefaultTTL
	}
	return iss.TTL
}

// Issue creates a new signed token for user.
func (iss *Issuer) Issue(user access.User) (string, error) {
	if len(iss.Secret) == 0 {
		return "", errors.New("token: no signing secret")
	}
	now := iss.now()
	claims := &Claims{
		UID:   user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(iss.ttl())),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(iss.Secret)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns its claims.
// Any problem with the token is reported as access.ErrInvalidToken.
func (iss *Issuer) Verify(tokenString string) (Claims, error) {
	var claims Claims
	if tokenString == "" {
		return claims, access.ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(iss.now),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return iss.Secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", access.ErrInvalidToken, err)
	}
	return claims, nil
}
