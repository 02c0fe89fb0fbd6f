// Package testdb connects integration tests to a real Postgres database.
//
// Tests using it are skipped unless TALLY_TEST_DATABASE_URL is set. The
// schema is migrated once per Open and every test runs inside a transaction
// that is rolled back, so tests do not see each other's rows.
package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/tally-api/internal/config"
	"github.com/phrazzld/tally-api/internal/platform/postgres"
	"github.com/phrazzld/tally-api/internal/redact"
)

// EnvDatabaseURL names the variable holding the test database URL.
const EnvDatabaseURL = "TALLY_TEST_DATABASE_URL"

// URL returns the configured test database URL, or "" when unset.
func URL() string {
	return os.Getenv(EnvDatabaseURL)
}

// Open connects to the test database and applies all migrations. It skips
// the test when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := URL()
	if dbURL == "" {
		t.Skipf("%s not set; skipping database test", EnvDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: dbURL, MaxOpenConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database %s: %s", redact.String(dbURL), redact.Error(err))
	}
	t.Cleanup(func() { _ = db.Close() })

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, quiet); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
