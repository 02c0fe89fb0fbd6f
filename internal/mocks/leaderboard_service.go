package mocks

import (
	"context"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/service"
)

// MockLeaderboardService implements service.LeaderboardService for testing
type MockLeaderboardService struct {
	TopFn     func(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error)
	HistoryFn func(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error)
}

var _ service.LeaderboardService = (*MockLeaderboardService)(nil)

// Top implements service.LeaderboardService
func (m *MockLeaderboardService) Top(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error) {
	if m.TopFn != nil {
		return m.TopFn(ctx, op, limit)
	}
	return []domain.LeaderboardEntry{}, nil
}

// History implements service.LeaderboardService
func (m *MockLeaderboardService) History(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, player, limit)
	}
	return []*domain.ExerciseResult{}, nil
}
