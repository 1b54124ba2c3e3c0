// Package token inspects locally held JWTs without verifying signatures.
// The gate only needs to know whether a token is worth sending; the identity
// backend remains the authority on validity.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "jobgate/pkg/domain-errors"
)

// Claims is the subset of registered claims the gate cares about.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect parses a raw JWT without signature verification and extracts the
// claims needed for local expiry decisions. Opaque or malformed tokens
// return a validation error.
func Inspect(raw string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	var registered jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &registered); err != nil {
		return Claims{}, dErrors.Wrap(err, dErrors.CodeValidation, "malformed token")
	}

	claims := Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires inside the given window.
// Tokens without an exp claim never report as expiring.
func (c Claims) ExpiresWithin(window time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(c.ExpiresAt) < window
}

// Expired reports whether the token's exp claim has passed.
func (c Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}
