package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/practice"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/service/auth"
	"github.com/phrazzld/tally-api/internal/store"
)

// MinAccessCodeLength is the shortest accepted homework access code.
const MinAccessCodeLength = 4

// HomeworkItemParams is one exercise of a new assignment.
type HomeworkItemParams struct {
	Operation domain.Operation
	OperandA  int
	OperandB  int
}

// CreateHomeworkParams describes a new assignment.
type CreateHomeworkParams struct {
	Title      string
	PlayerName string
	AccessCode string
	Items      []HomeworkItemParams
	DueAt      *time.Time
}

// HomeworkReport summarises progress for the adult holding the access code.
type HomeworkReport struct {
	Assignment    *domain.HomeworkAssignment `json:"assignment"`
	Completed     int                        `json:"completed"`
	Total         int                        `json:"total"`
	TotalScore    int                        `json:"total_score"`
	TotalMistakes int                        `json:"total_mistakes"`
	TimeSpent     time.Duration              `json:"time_spent"`
	Results       []*domain.ExerciseResult   `json:"results"`
}

// HomeworkService manages homework assignments.
type HomeworkService interface {
	// Create validates that every item can be planned, hashes the access code
	// and stores the assignment with its items atomically.
	Create(ctx context.Context, params CreateHomeworkParams) (*domain.HomeworkAssignment, error)

	// Get returns an assignment to the player it was assigned to.
	Get(ctx context.Context, player string, id uuid.UUID) (*domain.HomeworkAssignment, error)

	// Report returns progress and results when accessCode matches.
	Report(ctx context.Context, id uuid.UUID, accessCode string) (*HomeworkReport, error)
}

// HomeworkRepository is the subset of store.HomeworkStore the service uses.
type HomeworkRepository interface {
	Create(ctx context.Context, h *domain.HomeworkAssignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error)
	WithTx(tx *sql.Tx) store.HomeworkStore
}

// ResultLister lists the results linked to an assignment.
type ResultLister interface {
	ListByHomework(ctx context.Context, assignmentID uuid.UUID) ([]*domain.ExerciseResult, error)
}

// homeworkServiceImpl implements the HomeworkService interface
type homeworkServiceImpl struct {
	db       store.Beginner
	homework HomeworkRepository
	results  ResultLister
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

var _ HomeworkService = (*homeworkServiceImpl)(nil)

// NewHomeworkService creates a new HomeworkService.
// It returns an error if any of the required dependencies are nil.
func NewHomeworkService(
	db store.Beginner,
	homework HomeworkRepository,
	results ResultLister,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (HomeworkService, error) {
	switch {
	case db == nil:
		return nil, NewServiceError("homework", "create_service", errors.New("db cannot be nil"))
	case homework == nil:
		return nil, NewServiceError("homework", "create_service", errors.New("homework store cannot be nil"))
	case results == nil:
		return nil, NewServiceError("homework", "create_service", errors.New("result store cannot be nil"))
	case hasher == nil || verifier == nil:
		return nil, NewServiceError("homework", "create_service", errors.New("hasher and verifier cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &homeworkServiceImpl{
		db:       db,
		homework: homework,
		results:  results,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With("component", "homework_service"),
	}, nil
}

// Create implements HomeworkService.Create
func (s *homeworkServiceImpl) Create(
	ctx context.Context,
	params CreateHomeworkParams,
) (*domain.HomeworkAssignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(strings.TrimSpace(params.AccessCode)) < MinAccessCodeLength {
		return nil, fmt.Errorf("%w: access code must be at least %d characters",
			domain.ErrValidation, MinAccessCodeLength)
	}

	items := make([]domain.HomeworkItem, 0, len(params.Items))
	for i, p := range params.Items {
		if _, err := practice.Build(p.Operation, p.OperandA, p.OperandB); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrValidation, i, err)
		}
		items = append(items, domain.HomeworkItem{
			Operation: p.Operation,
			OperandA:  p.OperandA,
			OperandB:  p.OperandB,
		})
	}

	hash, err := s.hasher.Hash(strings.TrimSpace(params.AccessCode))
	if err != nil {
		log.Error("failed to hash access code", "error", err)
		return nil, NewServiceError("homework", "create", err)
	}

	h, err := domain.NewHomeworkAssignment(params.Title, params.PlayerName, hash, items, params.DueAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.homework.WithTx(tx).Create(ctx, h)
	})
	if err != nil {
		log.Error("failed to store homework", "error", err, "homework_id", h.ID)
		return nil, NewServiceError("homework", "create", err)
	}

	log.Info("homework created",
		"homework_id", h.ID,
		"player", h.PlayerName,
		"items", len(h.Items))
	return h, nil
}

// Get implements HomeworkService.Get
func (s *homeworkServiceImpl) Get(
	ctx context.Context,
	player string,
	id uuid.UUID,
) (*domain.HomeworkAssignment, error) {
	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.PlayerName != strings.TrimSpace(player) {
		return nil, ErrNotOwned
	}
	return h, nil
}

// Report implements HomeworkService.Report
func (s *homeworkServiceImpl) Report(
	ctx context.Context,
	id uuid.UUID,
	accessCode string,
) (*HomeworkReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	h, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.Compare(h.AccessCodeHash, strings.TrimSpace(accessCode)); err != nil {
		log.Warn("homework report access denied", "homework_id", id)
		return nil, ErrAccessDenied
	}

	results, err := s.results.ListByHomework(ctx, id)
	if err != nil {
		log.Error("failed to list homework results", "error", err, "homework_id", id)
		return nil, NewServiceError("homework", "report", err)
	}

	report := &HomeworkReport{Assignment: h, Results: results}
	report.Completed, report.Total = h.Progress()
	for _, r := range results {
		report.TotalScore += r.Score
		report.TotalMistakes += r.Mistakes
		report.TimeSpent += r.Duration
	}
	return report, nil
}

func (s *homeworkServiceImpl) load(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error) {
	h, err := s.homework.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrHomeworkNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load homework",
			"error", err,
			"homework_id", id)
		return nil, NewServiceError("homework", "get", err)
	}
	return h, nil
}
