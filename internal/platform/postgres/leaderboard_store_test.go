package postgres

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLeaderboardStore_Top(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY player_name")).
		WithArgs("multiplication", 3).
		WillReturnRows(sqlmock.NewRows([]string{"player_name", "count", "sum", "max"}).
			AddRow("ada", 4, 480, 140).
			AddRow("grace", 3, 300, 120))

	entries, err := NewPostgresLeaderboardStore(db, nil).Top(context.Background(), domain.OperationMultiplication, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.LeaderboardEntry{
		{Rank: 1, PlayerName: "ada", Solved: 4, TotalScore: 480, BestScore: 140},
		{Rank: 2, PlayerName: "grace", Solved: 3, TotalScore: 300, BestScore: 120},
	}, entries)
}

func TestPostgresLeaderboardStore_TopEmpty(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY player_name")).
		WithArgs("", 10).
		WillReturnRows(sqlmock.NewRows([]string{"player_name", "count", "sum", "max"}))

	entries, err := NewPostgresLeaderboardStore(db, nil).Top(context.Background(), "", 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPostgresLeaderboardStore_TopError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY player_name")).
		WillReturnError(errors.New("connection reset"))

	_, err := NewPostgresLeaderboardStore(db, nil).Top(context.Background(), "", 10)
	assert.ErrorContains(t, err, "top operation on leaderboard failed")
}

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		body, err := fs.ReadFile(migrationFS, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}
