package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
)

// ResultStore defines the interface for solved exercise persistence.
type ResultStore interface {
	// Create saves a new result.
	// Returns validation errors from the domain ExerciseResult if data is invalid.
	Create(ctx context.Context, result *domain.ExerciseResult) error

	// ListByPlayer returns a player's most recent results, newest first.
	// Returns an empty slice when the player has none.
	ListByPlayer(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error)

	// ListByHomework returns the results linked to an assignment's items in
	// item order.
	ListByHomework(ctx context.Context, assignmentID uuid.UUID) ([]*domain.ExerciseResult, error)

	// WithTx returns a new ResultStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ResultStore
}

// LeaderboardStore aggregates results into rankings.
type LeaderboardStore interface {
	// Top returns the best players by total score. An empty op ranks across
	// every operation.
	Top(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error)
}
