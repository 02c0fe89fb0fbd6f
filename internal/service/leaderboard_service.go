package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// Leaderboard and history page sizes.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// LeaderboardService ranks players and lists their history.
type LeaderboardService interface {
	// Top ranks players by total score. An empty op ranks across all operations.
	Top(ctx context.Context, op domain.Operation, limit int) ([]domain.LeaderboardEntry, error)

	// History returns a player's most recent results.
	History(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error)
}

// ResultHistory lists a player's results.
type ResultHistory interface {
	ListByPlayer(ctx context.Context, player string, limit int) ([]*domain.ExerciseResult, error)
}

// leaderboardServiceImpl implements the LeaderboardService interface
type leaderboardServiceImpl struct {
	board   store.LeaderboardStore
	history ResultHistory
	logger  *slog.Logger
}

var _ LeaderboardService = (*leaderboardServiceImpl)(nil)

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	board store.LeaderboardStore,
	history ResultHistory,
	logger *slog.Logger,
) (LeaderboardService, error) {
	if board == nil || history == nil {
		return nil, NewServiceError("leaderboard", "create_service", errors.New("stores cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &leaderboardServiceImpl{
		board:   board,
		history: history,
		logger:  logger.With("component", "leaderboard_service"),
	}, nil
}

// clampLimit maps non-positive limits to the default and caps the rest.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	return min(limit, MaxLeaderboardLimit)
}

// Top implements LeaderboardService.Top
func (s *leaderboardServiceImpl) Top(
	ctx context.Context,
	op domain.Operation,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	if op != "" && !op.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, op)
	}

	entries, err := s.board.Top(ctx, op, clampLimit(limit))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load leaderboard",
			"error", err,
			"operation", op)
		return nil, NewServiceError("leaderboard", "top", err)
	}
	return entries, nil
}

// History implements LeaderboardService.History
func (s *leaderboardServiceImpl) History(
	ctx context.Context,
	player string,
	limit int,
) ([]*domain.ExerciseResult, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, domain.ErrEmptyPlayerName
	}

	results, err := s.history.ListByPlayer(ctx, player, clampLimit(limit))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load history", "error", err)
		return nil, NewServiceError("leaderboard", "history", err)
	}
	return results, nil
}
