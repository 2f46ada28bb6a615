package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

func IsValidTokenType(typ string) bool {
	return typ == AccessToken || typ == RefreshToken
}

type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

type CustomClaims struct {
	UserID     uuid.UUID `json:"user_id"`
	TokenID    uuid.UUID `json:"jti"`
	TokenType  string    `json:"typ"`
	Email      string    `json:"email,omitempty"`
	Username   string    `json:"username,omitempty"`
	IsVerified bool      `json:"is_verified,omitempty"`
	jwt.RegisteredClaims
}

// BlacklistedToken is a revoked refresh token, keyed by its jti claim.
// Rows become garbage once ExpiresAt passes; the token would be rejected
// on expiry alone from then on.
type BlacklistedToken struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	TokenHash     string
	ExpiresAt     time.Time
	BlacklistedAt time.Time
}
