package auth

import (
	"context"
	"time"
)

// JWTService issues and checks player tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the named player.
	GenerateToken(ctx context.Context, player string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a player token.
type Claims struct {
	// PlayerName is the display name the token was issued for.
	PlayerName string `json:"player,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
