package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tally-api/internal/api/shared"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/domain/plan"
	"github.com/phrazzld/tally-api/internal/service"
	"github.com/phrazzld/tally-api/internal/service/auth"
	"github.com/phrazzld/tally-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	// Input guard rejections carry their own classification
	switch guard.KindOf(err) {
	case guard.KindTooFast:
		return http.StatusTooManyRequests
	case guard.KindTooManyAttempts, guard.KindNotAwaitingInput:
		return http.StatusConflict
	case guard.KindEmpty, guard.KindNonNumeric, guard.KindOutOfRange, guard.KindInvalidArgument:
		return http.StatusUnprocessableEntity
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrHomeworkNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrHomeworkItemDone),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Capacity
	case errors.Is(err, service.ErrTooManySessions):
		return http.StatusServiceUnavailable

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrEmptyPlayerName),
		errors.Is(err, auth.ErrEmptyPlayerName),
		errors.Is(err, plan.ErrInvalidArgument),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that reveals no
// internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch guard.KindOf(err) {
	case guard.KindEmpty:
		return "Enter a digit"
	case guard.KindNonNumeric:
		return "Input must be a digit"
	case guard.KindOutOfRange:
		return "Input must be a single digit from 0 to 9"
	case guard.KindInvalidArgument:
		return "Invalid input"
	case guard.KindTooFast:
		return "Input submitted too fast, try again"
	case guard.KindTooManyAttempts:
		return "Too many attempts on this step, reset the exercise to continue"
	case guard.KindNotAwaitingInput:
		return "The exercise is not awaiting input"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "This resource belongs to another player"
	case errors.Is(err, service.ErrAccessDenied):
		return "Access code is incorrect"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Exercise not found"
	case errors.Is(err, service.ErrHomeworkNotFound),
		errors.Is(err, store.ErrHomeworkNotFound),
		errors.Is(err, store.ErrHomeworkItemNotFound):
		return "Homework not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, service.ErrHomeworkItemDone),
		errors.Is(err, store.ErrItemAlreadyDone):
		return "Homework exercise already completed"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, service.ErrTooManySessions):
		return "Too many exercises in progress, try again later"

	case errors.Is(err, domain.ErrInvalidOperation):
		return "Invalid operation"
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Invalid difficulty"
	case errors.Is(err, domain.ErrEmptyPlayerName),
		errors.Is(err, auth.ErrEmptyPlayerName):
		return "Player name is required"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID format"
	case errors.Is(err, plan.ErrNegativeDifference):
		return "The second number must not be larger than the first"
	case errors.Is(err, plan.ErrInvalidArgument):
		return "These numbers cannot be used for this operation"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. A non-empty
// fallbackMsg replaces the generic message of unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMsg != "" {
		message = fallbackMsg
	}

	var opts []shared.ResponseOption
	if kind := guard.KindOf(err); kind != guard.KindNone {
		opts = append(opts, shared.WithErrorKind(string(kind)))
		if kind == guard.KindTooManyAttempts {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
	}
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if msg := getValidationTagMessage(fe.Tag()); msg != "" {
		return fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("Invalid %s", field)
}

// getValidationTagMessage maps validation tags to user-friendly messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "max", "gte", "lte", "gt", "lt":
		return "out of range"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID format"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}
