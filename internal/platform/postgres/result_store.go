package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// PostgresResultStore implements the store.ResultStore interface
// using a PostgreSQL database as the storage backend.
type PostgresResultStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResultStore creates a new PostgreSQL implementation of the ResultStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresResultStore(db store.DBTX, logger *slog.Logger) *PostgresResultStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

// Ensure PostgresResultStore implements store.ResultStore interface
var _ store.ResultStore = (*PostgresResultStore)(nil)

// Create implements store.ResultStore.Create
func (s *PostgresResultStore) Create(ctx context.Context, r *domain.ExerciseResult) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		log.Warn("result validation failed during create",
			slog.String("error", err.Error()),
			slog.String("result_id", r.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO exercise_results (
			id, player_name, operation, operand_a, operand_b,
			steps, mistakes, score, duration_ms, homework_item_id, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.PlayerName,
		string(r.Operation),
		r.OperandA,
		r.OperandB,
		r.Steps,
		r.Mistakes,
		r.Score,
		r.Duration.Milliseconds(),
		r.HomeworkItemID,
		r.CompletedAt,
	)
	if err != nil {
		log.Error("failed to create exercise result",
			slog.String("error", err.Error()),
			slog.String("result_id", r.ID.String()))
		return store.NewStoreError("exercise_result", "create", "insert failed", MapError(err))
	}

	log.Debug("exercise result created",
		slog.String("result_id", r.ID.String()),
		slog.String("operation", string(r.Operation)),
		slog.Int("score", r.Score))
	return nil
}

// ListByPlayer implements store.ResultStore.ListByPlayer
func (s *PostgresResultStore) ListByPlayer(
	ctx context.Context,
	player string,
	limit int,
) ([]*domain.ExerciseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, player_name, operation, operand_a, operand_b,
			steps, mistakes, score, duration_ms, homework_item_id, completed_at
		FROM exercise_results
		WHERE player_name = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, player, limit)
	if err != nil {
		log.Error("failed to list exercise results", slog.String("error", err.Error()))
		return nil, store.NewStoreError("exercise_result", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return scanResults(rows)
}

// ListByHomework implements store.ResultStore.ListByHomework
func (s *PostgresResultStore) ListByHomework(
	ctx context.Context,
	assignmentID uuid.UUID,
) ([]*domain.ExerciseResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.player_name, r.operation, r.operand_a, r.operand_b,
			r.steps, r.mistakes, r.score, r.duration_ms, r.homework_item_id, r.completed_at
		FROM exercise_results r
		JOIN homework_items i ON i.result_id = r.id
		WHERE i.assignment_id = $1
		ORDER BY i.position ASC
	`
	rows, err := s.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		log.Error("failed to list homework results",
			slog.String("error", err.Error()),
			slog.String("homework_id", assignmentID.String()))
		return nil, store.NewStoreError("exercise_result", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return scanResults(rows)
}

// scanResults reads exercise_results rows selected in table column order.
func scanResults(rows *sql.Rows) ([]*domain.ExerciseResult, error) {
	results := []*domain.ExerciseResult{}
	for rows.Next() {
		var (
			r          domain.ExerciseResult
			op         string
			durationMS int64
			itemID     uuid.NullUUID
		)
		if err := rows.Scan(
			&r.ID,
			&r.PlayerName,
			&op,
			&r.OperandA,
			&r.OperandB,
			&r.Steps,
			&r.Mistakes,
			&r.Score,
			&durationMS,
			&itemID,
			&r.CompletedAt,
		); err != nil {
			return nil, store.NewStoreError("exercise_result", "list", "scan failed", MapError(err))
		}
		r.Operation = domain.Operation(op)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if itemID.Valid {
			id := itemID.UUID
			r.HomeworkItemID = &id
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("exercise_result", "list", "row iteration failed", MapError(err))
	}
	return results, nil
}

// WithTx implements store.ResultStore.WithTx
func (s *PostgresResultStore) WithTx(tx *sql.Tx) store.ResultStore {
	return &PostgresResultStore{
		db:     tx,
		logger: s.logger,
	}
}
