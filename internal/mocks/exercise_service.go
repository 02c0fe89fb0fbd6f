package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/service"
)

// MockExerciseService implements service.ExerciseService for testing.
// Unset functions return nil values.
type MockExerciseService struct {
	StartFn     func(ctx context.Context, params service.StartExerciseParams) (*service.ExerciseView, error)
	GetFn       func(ctx context.Context, player string, id uuid.UUID) (*service.ExerciseView, error)
	EnterFn     func(ctx context.Context, player string, id uuid.UUID, raw string) (*service.InputOutcome, error)
	ActFn       func(ctx context.Context, player string, id uuid.UUID) (*service.InputOutcome, error)
	ResetFn     func(ctx context.Context, player string, id uuid.UUID) (*service.ExerciseView, error)
	ReapFn      func(now time.Time) int
	RunReaperFn func(ctx context.Context) error
}

var _ service.ExerciseService = (*MockExerciseService)(nil)

// Start implements service.ExerciseService
func (m *MockExerciseService) Start(ctx context.Context, params service.StartExerciseParams) (*service.ExerciseView, error) {
	if m.StartFn != nil {
		return m.StartFn(ctx, params)
	}
	return nil, nil
}

// Get implements service.ExerciseService
func (m *MockExerciseService) Get(ctx context.Context, player string, id uuid.UUID) (*service.ExerciseView, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, player, id)
	}
	return nil, nil
}

// Enter implements service.ExerciseService
func (m *MockExerciseService) Enter(ctx context.Context, player string, id uuid.UUID, raw string) (*service.InputOutcome, error) {
	if m.EnterFn != nil {
		return m.EnterFn(ctx, player, id, raw)
	}
	return nil, nil
}

// Act implements service.ExerciseService
func (m *MockExerciseService) Act(ctx context.Context, player string, id uuid.UUID) (*service.InputOutcome, error) {
	if m.ActFn != nil {
		return m.ActFn(ctx, player, id)
	}
	return nil, nil
}

// Reset implements service.ExerciseService
func (m *MockExerciseService) Reset(ctx context.Context, player string, id uuid.UUID) (*service.ExerciseView, error) {
	if m.ResetFn != nil {
		return m.ResetFn(ctx, player, id)
	}
	return nil, nil
}

// Reap implements service.ExerciseService
func (m *MockExerciseService) Reap(now time.Time) int {
	if m.ReapFn != nil {
		return m.ReapFn(now)
	}
	return 0
}

// RunReaper implements service.ExerciseService. Without RunReaperFn it
// blocks until ctx is done.
func (m *MockExerciseService) RunReaper(ctx context.Context) error {
	if m.RunReaperFn != nil {
		return m.RunReaperFn(ctx)
	}
	<-ctx.Done()
	return nil
}
