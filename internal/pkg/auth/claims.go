// internal/pkg/auth/claims.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo carries the claims the gateway cares about from a backend-issued
// bearer token. The gateway never holds the signing secret, so claims are
// inspected without signature verification; the backend remains the authority
// and rejects tampered tokens on every call.
type TokenInfo struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Inspect parses a backend-issued JWT without verifying its signature
func Inspect(tokenString string) (*TokenInfo, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	info := &TokenInfo{}
	if v, ok := claims["id"].(string); ok {
		info.UserID = v
	} else if v, ok := claims["sub"].(string); ok {
		info.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		info.Role = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim are treated as still valid; the backend is the
// final arbiter either way.
func Expired(tokenString string, now time.Time) bool {
	info, err := Inspect(tokenString)
	if err != nil {
		// Unparseable tokens are useless for authentication
		return true
	}
	if info.ExpiresAt.IsZero() {
		return false
	}
	return info.ExpiresAt.Before(now)
}
