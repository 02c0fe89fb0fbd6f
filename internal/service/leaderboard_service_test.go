package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/mocks"
	"github.com/phrazzld/tally-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaderboardService_RequiresStores(t *testing.T) {
	_, err := service.NewLeaderboardService(nil, &mocks.MockResultStore{}, nil)
	assert.Error(t, err)
	_, err = service.NewLeaderboardService(&mocks.MockLeaderboardStore{}, nil, nil)
	assert.Error(t, err)
}

func TestLeaderboardService_TopClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Default", 0, service.DefaultLeaderboardLimit},
		{"Negative", -3, service.DefaultLeaderboardLimit},
		{"InRange", 25, 25},
		{"Capped", 5000, service.MaxLeaderboardLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			board := &mocks.MockLeaderboardStore{
				TopFn: func(_ context.Context, _ domain.Operation, limit int) ([]domain.LeaderboardEntry, error) {
					got = limit
					return []domain.LeaderboardEntry{}, nil
				},
			}
			svc, err := service.NewLeaderboardService(board, &mocks.MockResultStore{}, nil)
			require.NoError(t, err)

			_, err = svc.Top(context.Background(), domain.OperationDivision, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLeaderboardService_Top(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{Rank: 1, PlayerName: "ada", Solved: 4, TotalScore: 520, BestScore: 160},
	}
	svc, err := service.NewLeaderboardService(&mocks.MockLeaderboardStore{Entries: entries}, &mocks.MockResultStore{}, nil)
	require.NoError(t, err)

	got, err := svc.Top(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = svc.Top(context.Background(), "modulo", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestLeaderboardService_TopStoreFailure(t *testing.T) {
	board := &mocks.MockLeaderboardStore{
		TopFn: func(context.Context, domain.Operation, int) ([]domain.LeaderboardEntry, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc, err := service.NewLeaderboardService(board, &mocks.MockResultStore{}, nil)
	require.NoError(t, err)

	_, err = svc.Top(context.Background(), "", 10)
	var serviceErr *service.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "top", serviceErr.Op)
}

func TestLeaderboardService_History(t *testing.T) {
	var gotPlayer string
	var gotLimit int
	results := &mocks.MockResultStore{
		ListByPlayerFn: func(_ context.Context, player string, limit int) ([]*domain.ExerciseResult, error) {
			gotPlayer, gotLimit = player, limit
			return []*domain.ExerciseResult{{PlayerName: player, Score: 90}}, nil
		},
	}
	svc, err := service.NewLeaderboardService(&mocks.MockLeaderboardStore{}, results, nil)
	require.NoError(t, err)

	got, err := svc.History(context.Background(), "  ada ", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "ada", gotPlayer)
	assert.Equal(t, service.DefaultLeaderboardLimit, gotLimit)

	_, err = svc.History(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, domain.ErrEmptyPlayerName)
}
