package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims of a session token.
type Claims struct {
	SessionID uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateSessionToken creates a signed token addressing the session.
	GenerateSessionToken(sessionID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
