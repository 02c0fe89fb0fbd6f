package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
)

// HomeworkStore defines the interface for homework assignment persistence.
type HomeworkStore interface {
	// Create saves an assignment together with its items.
	Create(ctx context.Context, h *domain.HomeworkAssignment) error

	// GetByID retrieves an assignment and its items ordered by position.
	// Returns ErrHomeworkNotFound if the assignment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error)

	// MarkItemDone links a result to an item.
	// Returns ErrHomeworkItemNotFound for an unknown item and
	// ErrItemAlreadyDone when the item already has a result.
	MarkItemDone(ctx context.Context, itemID, resultID uuid.UUID) error

	// WithTx returns a new HomeworkStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HomeworkStore
}
