package mocks

import (
	"context"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/store"
)

// MockLeaderboardStore implements store.LeaderboardStore for testing
type MockLeaderboardStore struct {
	TopFn func(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error)

	// Entries is returned when TopFn is nil.
	Entries []domain.LeaderboardEntry
}

var _ store.LeaderboardStore = (*MockLeaderboardStore)(nil)

// Top implements store.LeaderboardStore
func (m *MockLeaderboardStore) Top(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error) {
	if m.TopFn != nil {
		return m.TopFn(ctx, op, limit)
	}
	return m.Entries, nil
}
