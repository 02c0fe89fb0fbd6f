package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/mocks"
	"github.com/phrazzld/tally-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaderboardRoutes(svc service.LeaderboardService) func(r chi.Router) {
	h := NewLeaderboardHandler(svc, nil)
	return func(r chi.Router) {
		r.Get("/api/leaderboard", h.GetLeaderboard)
		r.Get("/api/results", h.GetHistory)
	}
}

func TestLeaderboardHandler_GetLeaderboard(t *testing.T) {
	var gotOp domain.Operation
	var gotLimit int
	svc := &mocks.MockLeaderboardService{
		TopFn: func(_ context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error) {
			gotOp, gotLimit = op, limit
			return []domain.LeaderboardEntry{{Rank: 1, PlayerName: "ada", Solved: 3, TotalScore: 410, BestScore: 160}}, nil
		},
	}

	rec := serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/leaderboard?operation=x&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.OperationMultiplication, gotOp)
	assert.Equal(t, 5, gotLimit)

	var resp LeaderboardResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "ada", resp.Entries[0].PlayerName)

	rec = serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, gotOp)
	assert.Zero(t, gotLimit)
}

func TestLeaderboardHandler_GetLeaderboardErrors(t *testing.T) {
	svc := &mocks.MockLeaderboardService{
		TopFn: func(context.Context, domain.Operation, int) ([]domain.LeaderboardEntry, error) {
			return nil, service.NewServiceError("leaderboard", "top", errors.New("connection reset"))
		},
	}

	rec := serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/leaderboard?operation=modulo", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/leaderboard?limit=ten", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/leaderboard", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to load leaderboard", decodeError(t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestLeaderboardHandler_GetHistory(t *testing.T) {
	var gotPlayer string
	svc := &mocks.MockLeaderboardService{
		HistoryFn: func(_ context.Context, player string, _ int) ([]*domain.ExerciseResult, error) {
			gotPlayer = player
			return []*domain.ExerciseResult{{ID: uuid.New(), PlayerName: player, Score: 90}}, nil
		},
	}

	rec := serve(t, "ada", leaderboardRoutes(svc), http.MethodGet, "/api/results?limit=20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada", gotPlayer)

	var resp HistoryResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ada", resp.PlayerName)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 90, resp.Results[0].Score)

	rec = serve(t, "", leaderboardRoutes(svc), http.MethodGet, "/api/results", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
