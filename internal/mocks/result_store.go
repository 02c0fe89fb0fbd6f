package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/store"
)

// MockResultStore implements store.ResultStore for testing. WithTx returns
// the mock itself unless WithTxFn is set.
type MockResultStore struct {
	CreateFn         func(ctx context.Context, result *domain.ExerciseResult) error
	ListByPlayerFn   func(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error)
	ListByHomeworkFn func(ctx context.Context, assignmentID uuid.UUID) ([]*domain.ExerciseResult, error)
	WithTxFn         func(tx *sql.Tx) store.ResultStore

	mu      sync.Mutex
	Created []*domain.ExerciseResult
}

var _ store.ResultStore = (*MockResultStore)(nil)

// Create implements store.ResultStore and records the result on success.
func (m *MockResultStore) Create(ctx context.Context, result *domain.ExerciseResult) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, result); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, result)
	return nil
}

// CreatedResults returns a copy of the recorded results.
func (m *MockResultStore) CreatedResults() []*domain.ExerciseResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ExerciseResult, len(m.Created))
	copy(out, m.Created)
	return out
}

// ListByPlayer implements store.ResultStore
func (m *MockResultStore) ListByPlayer(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error) {
	if m.ListByPlayerFn != nil {
		return m.ListByPlayerFn(ctx, player, limit)
	}
	return []*domain.ExerciseResult{}, nil
}

// ListByHomework implements store.ResultStore
func (m *MockResultStore) ListByHomework(ctx context.Context, assignmentID uuid.UUID) ([]*domain.ExerciseResult, error) {
	if m.ListByHomeworkFn != nil {
		return m.ListByHomeworkFn(ctx, assignmentID)
	}
	return []*domain.ExerciseResult{}, nil
}

// WithTx implements store.ResultStore
func (m *MockResultStore) WithTx(tx *sql.Tx) store.ResultStore {
	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}
