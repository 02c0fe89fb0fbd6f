package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// PostgresHomeworkStore implements the store.HomeworkStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHomeworkStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHomeworkStore creates a new PostgreSQL implementation of the HomeworkStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresHomeworkStore(db store.DBTX, logger *slog.Logger) *PostgresHomeworkStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresHomeworkStore{
		db:     db,
		logger: logger.With(slog.String("component", "homework_store")),
	}
}

var _ store.HomeworkStore = (*PostgresHomeworkStore)(nil)

// Create implements store.HomeworkStore.Create. Callers that need the
// assignment and its items to land atomically run it on a transaction.
func (s *PostgresHomeworkStore) Create(ctx context.Context, h *domain.HomeworkAssignment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := h.Validate(); err != nil {
		log.Warn("homework validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO homework_assignments (id, title, player_name, access_code_hash, created_at, due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, h.ID, h.Title, h.PlayerName, h.AccessCodeHash, h.CreatedAt, h.DueAt)
	if err != nil {
		log.Error("failed to create homework assignment",
			slog.String("error", err.Error()),
			slog.String("homework_id", h.ID.String()))
		return store.NewStoreError("homework", "create", "insert failed", MapError(err))
	}

	for _, item := range h.Items {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO homework_items (id, assignment_id, position, operation, operand_a, operand_b)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.ID, h.ID, item.Position, string(item.Operation), item.OperandA, item.OperandB)
		if err != nil {
			log.Error("failed to create homework item",
				slog.String("error", err.Error()),
				slog.String("homework_id", h.ID.String()),
				slog.Int("position", item.Position))
			return store.NewStoreError("homework_item", "create", "insert failed", MapError(err))
		}
	}

	log.Info("homework assignment created",
		slog.String("homework_id", h.ID.String()),
		slog.Int("items", len(h.Items)))
	return nil
}

// GetByID implements store.HomeworkStore.GetByID
func (s *PostgresHomeworkStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		h   domain.HomeworkAssignment
		due sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, player_name, access_code_hash, created_at, due_at
		FROM homework_assignments
		WHERE id = $1
	`, id).Scan(&h.ID, &h.Title, &h.PlayerName, &h.AccessCodeHash, &h.CreatedAt, &due)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("homework not found", slog.String("homework_id", id.String()))
			return nil, store.ErrHomeworkNotFound
		}
		log.Error("failed to get homework", slog.String("error", err.Error()))
		return nil, store.NewStoreError("homework", "get", "query failed", MapError(err))
	}
	if due.Valid {
		h.DueAt = &due.Time
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, assignment_id, position, operation, operand_a, operand_b, result_id
		FROM homework_items
		WHERE assignment_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, store.NewStoreError("homework_item", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			item     domain.HomeworkItem
			op       string
			resultID uuid.NullUUID
		)
		if err := rows.Scan(
			&item.ID,
			&item.AssignmentID,
			&item.Position,
			&op,
			&item.OperandA,
			&item.OperandB,
			&resultID,
		); err != nil {
			return nil, store.NewStoreError("homework_item", "list", "scan failed", MapError(err))
		}
		item.Operation = domain.Operation(op)
		if resultID.Valid {
			rid := resultID.UUID
			item.ResultID = &rid
		}
		h.Items = append(h.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("homework_item", "list", "row iteration failed", MapError(err))
	}
	return &h, nil
}

// MarkItemDone implements store.HomeworkStore.MarkItemDone
func (s *PostgresHomeworkStore) MarkItemDone(ctx context.Context, itemID, resultID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var existing uuid.NullUUID
	err := s.db.QueryRowContext(ctx,
		`SELECT result_id FROM homework_items WHERE id = $1 FOR UPDATE`, itemID).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrHomeworkItemNotFound
		}
		return store.NewStoreError("homework_item", "update", "lookup failed", MapError(err))
	}
	if existing.Valid {
		return store.ErrItemAlreadyDone
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE homework_items SET result_id = $2 WHERE id = $1`, itemID, resultID)
	if err != nil {
		log.Error("failed to mark homework item done",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return store.NewStoreError("homework_item", "update", "update failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrHomeworkItemNotFound); err != nil {
		return err
	}

	log.Debug("homework item marked done",
		slog.String("item_id", itemID.String()),
		slog.String("result_id", resultID.String()))
	return nil
}

// WithTx implements store.HomeworkStore.WithTx
func (s *PostgresHomeworkStore) WithTx(tx *sql.Tx) store.HomeworkStore {
	return &PostgresHomeworkStore{
		db:     tx,
		logger: s.logger,
	}
}
