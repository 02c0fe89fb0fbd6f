package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/events"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// ResultRecorder persists solved exercises. It handles TypeExerciseSolved
// and ignores every other event type.
type ResultRecorder struct {
	db       store.Beginner
	results  store.ResultStore
	homework store.HomeworkStore
	logger   *slog.Logger
}

var _ events.EventHandler = (*ResultRecorder)(nil)

// NewResultRecorder creates a ResultRecorder.
// It returns an error if any of the required dependencies are nil.
func NewResultRecorder(
	db store.Beginner,
	results store.ResultStore,
	homework store.HomeworkStore,
	logger *slog.Logger,
) (*ResultRecorder, error) {
	if db == nil {
		return nil, NewServiceError("result", "create_service", errors.New("db cannot be nil"))
	}
	if results == nil {
		return nil, NewServiceError("result", "create_service", errors.New("result store cannot be nil"))
	}
	if homework == nil {
		return nil, NewServiceError("result", "create_service", errors.New("homework store cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultRecorder{
		db:       db,
		results:  results,
		homework: homework,
		logger:   logger.With("component", "result_recorder"),
	}, nil
}

// HandleEvent implements events.EventHandler.
//
// A homework item that is already done or gone no longer blocks the result:
// it is recorded again as plain practice.
func (r *ResultRecorder) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeExerciseSolved {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, r.logger)

	var solved events.ExerciseSolved
	if err := event.UnmarshalPayload(&solved); err != nil {
		log.Error("failed to decode solved event", "error", err, "event_id", event.ID)
		return NewServiceError("result", "record", err)
	}

	result, err := domain.NewExerciseResult(
		solved.PlayerName,
		solved.Operation,
		solved.OperandA,
		solved.OperandB,
		solved.Steps,
		solved.Mistakes,
		solved.Duration,
	)
	if err != nil {
		log.Error("solved event carries an invalid result", "error", err, "event_id", event.ID)
		return NewServiceError("result", "record", err)
	}
	result.HomeworkItemID = solved.HomeworkItemID

	err = r.record(ctx, result)
	if result.HomeworkItemID != nil &&
		(errors.Is(err, store.ErrItemAlreadyDone) || errors.Is(err, store.ErrHomeworkItemNotFound)) {
		log.Warn("homework item unavailable, recording as practice",
			"item_id", *result.HomeworkItemID,
			"reason", err)
		result.HomeworkItemID = nil
		err = r.record(ctx, result)
	}
	if err != nil {
		log.Error("failed to record exercise result",
			"error", err,
			"session_id", solved.SessionID)
		return NewServiceError("result", "record", err)
	}

	log.Info("exercise result recorded",
		"result_id", result.ID,
		"player", result.PlayerName,
		"score", result.Score,
		"homework", result.HomeworkItemID != nil)
	return nil
}

// record inserts the result and links its homework item in one transaction.
func (r *ResultRecorder) record(ctx context.Context, result *domain.ExerciseResult) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := r.results.WithTx(tx).Create(ctx, result); err != nil {
			return err
		}
		if result.HomeworkItemID == nil {
			return nil
		}
		return r.homework.WithTx(tx).MarkItemDone(ctx, *result.HomeworkItemID, result.ID)
	})
}
