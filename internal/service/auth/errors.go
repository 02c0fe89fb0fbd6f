package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrEmptyPlayerName is returned when a token is requested for a blank name.
	ErrEmptyPlayerName = errors.New("player name cannot be empty")

	// ErrAccessCodeMismatch indicates a homework access code did not match its hash.
	ErrAccessCodeMismatch = errors.New("access code does not match")
)
