// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidOperation is returned for an unknown arithmetic operation.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidDifficulty is returned for an unknown difficulty level.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrEmptyPlayerName is returned when a player name is blank.
	ErrEmptyPlayerName = errors.New("player name cannot be empty")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
