package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps each to a status code.
var (
	// ErrNotOwned indicates a resource belongs to a different player than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another player")

	// ErrSessionNotFound indicates the exercise session does not exist or was reaped.
	// API layer should map this to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("exercise session not found")

	// ErrTooManySessions indicates the session registry is full.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrTooManySessions = errors.New("too many open exercise sessions")

	// ErrHomeworkNotFound indicates the homework assignment or item does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrHomeworkNotFound = errors.New("homework not found")

	// ErrHomeworkItemDone indicates the homework item already has a result.
	// API layer should map this to HTTP 409 Conflict.
	ErrHomeworkItemDone = errors.New("homework item already completed")

	// ErrAccessDenied indicates a wrong or missing homework access code.
	// API layer should map this to HTTP 403 Forbidden.
	ErrAccessDenied = errors.New("access code rejected")
)

// ServiceError wraps an unexpected failure with the service and operation it came from.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}
