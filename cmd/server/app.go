package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tally-api/internal/config"
	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/events"
	"github.com/phrazzld/tally-api/internal/platform/postgres"
	"github.com/phrazzld/tally-api/internal/service"
	"github.com/phrazzld/tally-api/internal/service/auth"
	"github.com/phrazzld/tally-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	resultStore      store.ResultStore
	homeworkStore    store.HomeworkStore
	leaderboardStore store.LeaderboardStore

	jwtService  auth.JWTService
	accessCodes *auth.BcryptVerifier

	eventEmitter       *events.InMemoryEventEmitter
	resultRecorder     *service.ResultRecorder
	exerciseService    service.ExerciseService
	homeworkService    service.HomeworkService
	leaderboardService service.LeaderboardService
}

// newApplication wires stores, services and the event pipeline around an
// established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.accessCodes = auth.NewBcryptVerifier(cfg.Auth.BCryptCost)

	app.resultStore = postgres.NewPostgresResultStore(db, logger)
	app.homeworkStore = postgres.NewPostgresHomeworkStore(db, logger)
	app.leaderboardStore = postgres.NewPostgresLeaderboardStore(db, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.resultRecorder, err = service.NewResultRecorder(db, app.resultStore, app.homeworkStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create result recorder: %w", err)
	}
	app.eventEmitter.RegisterHandler(app.resultRecorder)

	app.exerciseService, err = service.NewExerciseService(
		service.ExerciseServiceConfig{
			Guard: guard.Config{
				MinInterval: cfg.Guard.MinInterval,
				MaxAttempts: cfg.Guard.MaxAttempts,
			},
			IdleTimeout:  cfg.Session.IdleTimeout,
			ReapInterval: cfg.Session.ReapInterval,
			MaxSessions:  cfg.Session.MaxSessions,
		},
		app.homeworkStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create exercise service: %w", err)
	}

	app.homeworkService, err = service.NewHomeworkService(
		db,
		app.homeworkStore,
		app.resultStore,
		app.accessCodes,
		app.accessCodes,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create homework service: %w", err)
	}

	app.leaderboardService, err = service.NewLeaderboardService(app.leaderboardStore, app.resultStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}
