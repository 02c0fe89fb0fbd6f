package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// PostgresLeaderboardStore ranks players from the exercise_results table.
type PostgresLeaderboardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLeaderboardStore creates a new PostgreSQL leaderboard store.
func NewPostgresLeaderboardStore(db store.DBTX, logger *slog.Logger) *PostgresLeaderboardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLeaderboardStore{
		db:     db,
		logger: logger.With(slog.String("component", "leaderboard_store")),
	}
}

var _ store.LeaderboardStore = (*PostgresLeaderboardStore)(nil)

// leaderboardQuery ranks by total score, then best single score, then name.
// $1 is the operation filter; an empty string matches every operation.
const leaderboardQuery = `
	SELECT player_name, COUNT(*), SUM(score), MAX(score)
	FROM exercise_results
	WHERE $1 = '' OR operation = $1
	GROUP BY player_name
	ORDER BY SUM(score) DESC, MAX(score) DESC, player_name ASC
	LIMIT $2
`

// Top implements store.LeaderboardStore.Top
func (s *PostgresLeaderboardStore) Top(
	ctx context.Context,
	op domain.Operation,
	limit int,
) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, leaderboardQuery, string(op), limit)
	if err != nil {
		log.Error("failed to query leaderboard", slog.String("error", err.Error()))
		return nil, store.NewStoreError("leaderboard", "top", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		e := domain.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.PlayerName, &e.Solved, &e.TotalScore, &e.BestScore); err != nil {
			return nil, store.NewStoreError("leaderboard", "top", "scan failed", MapError(err))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("leaderboard", "top", "row iteration failed", MapError(err))
	}

	log.Debug("leaderboard retrieved",
		slog.String("operation", string(op)),
		slog.Int("entries", len(entries)))
	return entries, nil
}
