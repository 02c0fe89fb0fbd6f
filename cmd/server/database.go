package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tally-api/internal/config"
	"github.com/phrazzld/tally-api/internal/platform/postgres"
)

// setupAppDatabase opens the connection pool and verifies it.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}
	logger.Info("Database connection established", "max_open_conns", cfg.Database.MaxOpenConns)
	return db, nil
}
