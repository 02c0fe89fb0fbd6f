package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/store"
)

// MockHomeworkStore implements store.HomeworkStore for testing. WithTx
// returns the mock itself.
type MockHomeworkStore struct {
	CreateFn       func(ctx context.Context, h *domain.HomeworkAssignment) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error)
	MarkItemDoneFn func(ctx context.Context, itemID, resultID uuid.UUID) error

	// TxCount counts WithTx calls.
	TxCount int
}

var _ store.HomeworkStore = (*MockHomeworkStore)(nil)

// Create implements store.HomeworkStore
func (m *MockHomeworkStore) Create(ctx context.Context, h *domain.HomeworkAssignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, h)
	}
	return nil
}

// GetByID implements store.HomeworkStore. Without GetByIDFn it reports
// store.ErrHomeworkNotFound.
func (m *MockHomeworkStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrHomeworkNotFound
}

// MarkItemDone implements store.HomeworkStore
func (m *MockHomeworkStore) MarkItemDone(ctx context.Context, itemID, resultID uuid.UUID) error {
	if m.MarkItemDoneFn != nil {
		return m.MarkItemDoneFn(ctx, itemID, resultID)
	}
	return nil
}

// WithTx implements store.HomeworkStore
func (m *MockHomeworkStore) WithTx(tx *sql.Tx) store.HomeworkStore {
	m.TxCount++
	return m
}
