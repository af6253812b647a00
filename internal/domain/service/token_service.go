package service

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims is the identity carried by a verified session credential.
type SessionClaims struct {
	UserID   uuid.UUID
	Username string
}

// TokenService defines the interface for issuing and validating signed
// session credentials. This abstracts the token format from the use cases.
type TokenService interface {
	// GenerateToken creates a signed session token bound to the user's
	// identity with an expiration.
	GenerateToken(userID uuid.UUID, username string) (string, error)

	// ValidateToken verifies a token string and returns its claims.
	// It fails closed on any malformed, expired, or forged input.
	ValidateToken(tokenString string) (*SessionClaims, error)

	// GetTokenDuration returns the configured session lifetime.
	GetTokenDuration() time.Duration
}
