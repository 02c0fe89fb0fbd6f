package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/domain/plan"
	"github.com/phrazzld/tally-api/internal/domain/practice"
	"github.com/phrazzld/tally-api/internal/domain/sequencer"
	"github.com/phrazzld/tally-api/internal/events"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/phrazzld/tally-api/internal/store"
)

// Defaults applied when ExerciseServiceConfig leaves a field zero.
const (
	DefaultIdleTimeout  = 30 * time.Minute
	DefaultReapInterval = time.Minute
	DefaultMaxSessions  = 10000
)

// HomeworkReader loads assignments so a session can be bound to a homework item.
type HomeworkReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.HomeworkAssignment, error)
}

// StartExerciseParams selects the exercise to start. Operands are generated
// from Difficulty unless both are given. A homework reference overrides
// Operation and operands with the item's.
type StartExerciseParams struct {
	PlayerName     string
	Operation      domain.Operation
	Difficulty     domain.Difficulty
	OperandA       *int
	OperandB       *int
	HomeworkID     *uuid.UUID
	HomeworkItemID *uuid.UUID
}

// TargetView is the awaited target as shown to the learner. The expected
// digit is never included.
type TargetView struct {
	Index      int             `json:"index"`
	Kind       plan.TargetKind `json:"kind"`
	Step       int             `json:"step"`
	Cell       plan.Cell       `json:"cell"`
	Action     bool            `json:"action"`
	Hint       string          `json:"hint"`
	Highlights []plan.Cell     `json:"highlights"`
	Errored    bool            `json:"errored"`
}

// CellView is one filled grid cell.
type CellView struct {
	Cell  plan.Cell `json:"cell"`
	Value string    `json:"value"`
}

// ExerciseView is a snapshot of one session.
type ExerciseView struct {
	ID             uuid.UUID        `json:"id"`
	PlayerName     string           `json:"player_name"`
	Operation      domain.Operation `json:"operation"`
	OperandA       int              `json:"operand_a"`
	OperandB       int              `json:"operand_b"`
	State          sequencer.State  `json:"state"`
	Cursor         int              `json:"cursor"`
	TotalSteps     int              `json:"total_steps"`
	Mistakes       int              `json:"mistakes"`
	Locked         bool             `json:"locked"`
	Current        *TargetView      `json:"current,omitempty"`
	Cells          []CellView       `json:"cells"`
	FadedCarries   []plan.Cell      `json:"faded_carries"`
	Answer         string           `json:"answer,omitempty"`
	Score          int              `json:"score,omitempty"`
	HomeworkItemID *uuid.UUID       `json:"homework_item_id,omitempty"`
	StartedAt      time.Time        `json:"started_at"`
}

// InputOutcome reports what one input or action did.
type InputOutcome struct {
	Correct   bool          `json:"correct"`
	Locked    bool          `json:"locked"`
	Completed bool          `json:"completed"`
	Exercise  *ExerciseView `json:"exercise"`
}

// ExerciseService runs step-by-step exercise sessions held in memory.
type ExerciseService interface {
	// Start plans a new exercise and opens a session awaiting the first input.
	Start(ctx context.Context, params StartExerciseParams) (*ExerciseView, error)

	// Get returns the current view of a session owned by player.
	Get(ctx context.Context, player string, id uuid.UUID) (*ExerciseView, error)

	// Enter submits one typed digit. Guard rejections are returned as errors
	// classified by guard.KindOf; a wrong digit is a successful call with
	// Correct unset.
	Enter(ctx context.Context, player string, id uuid.UUID, raw string) (*InputOutcome, error)

	// Act performs the awaited action, such as a bring-down.
	Act(ctx context.Context, player string, id uuid.UUID) (*InputOutcome, error)

	// Reset rewinds the session to its first target.
	Reset(ctx context.Context, player string, id uuid.UUID) (*ExerciseView, error)

	// Reap drops sessions idle since before now minus the idle timeout and
	// returns how many were removed.
	Reap(now time.Time) int

	// RunReaper calls Reap on every reap interval until ctx is done.
	RunReaper(ctx context.Context) error
}

// ExerciseServiceConfig tunes the session registry.
type ExerciseServiceConfig struct {
	Guard        guard.Config
	IdleTimeout  time.Duration
	ReapInterval time.Duration
	MaxSessions  int

	// Seed fixes the operand generators; zero draws a random seed. Each
	// session gets its own generator derived from Seed and its start order.
	Seed uint64

	// Clock is injectable for testing; nil means time.Now.
	Clock func() time.Time
}

// exerciseSession is one learner's exercise. mu guards every field below it.
type exerciseSession struct {
	sequencer.NopEffects

	id             uuid.UUID
	player         string
	op             domain.Operation
	plan           plan.Plan
	homeworkItemID *uuid.UUID
	startedAt      time.Time

	mu            sync.Mutex
	seq           *sequencer.Sequencer
	lastActive    time.Time
	solvedPending bool
}

// Solved implements sequencer.Effects.
func (s *exerciseSession) Solved() {
	s.solvedPending = true
}

// View renders the session. The caller holds s.mu.
func (s *exerciseSession) View() *ExerciseView {
	targets := s.seq.Targets()
	cursor := s.seq.Cursor()
	a, b := s.plan.Operands()

	grid := plan.Replay(targets, cursor)
	cells := make([]CellView, 0, len(grid))
	for c, v := range grid {
		cells = append(cells, CellView{Cell: c, Value: string(v)})
	}
	slices.SortFunc(cells, func(x, y CellView) int {
		return cmp.Or(
			cmp.Compare(x.Cell.Zone, y.Cell.Zone),
			cmp.Compare(x.Cell.Row, y.Cell.Row),
			cmp.Compare(x.Cell.Col, y.Cell.Col),
		)
	})

	v := &ExerciseView{
		ID:             s.id,
		PlayerName:     s.player,
		Operation:      s.op,
		OperandA:       a,
		OperandB:       b,
		State:          s.seq.State(),
		Cursor:         cursor,
		TotalSteps:     len(targets),
		Mistakes:       s.seq.Mistakes(),
		Locked:         s.seq.Locked(),
		Cells:          cells,
		FadedCarries:   plan.FadedCarries(targets, cursor),
		HomeworkItemID: s.homeworkItemID,
		StartedAt:      s.startedAt,
	}
	if t, ok := s.seq.Current(); ok {
		v.Current = &TargetView{
			Index:      cursor,
			Kind:       t.Kind,
			Step:       t.Step,
			Cell:       t.Cell,
			Action:     t.IsAction(),
			Hint:       t.Hint,
			Highlights: plan.ActiveHighlights(targets, cursor),
			Errored:    s.seq.Errored(cursor),
		}
	}
	if v.State == sequencer.StateGameCompleted {
		v.Answer = s.plan.Answer()
		v.Score = domain.ScoreFor(len(targets), v.Mistakes)
	}
	return v
}

// takeSolved returns the solved payload once, after Solved fired. The caller holds s.mu.
func (s *exerciseSession) takeSolved(now time.Time) *events.ExerciseSolved {
	if !s.solvedPending {
		return nil
	}
	s.solvedPending = false
	a, b := s.plan.Operands()
	return &events.ExerciseSolved{
		SessionID:      s.id,
		PlayerName:     s.player,
		Operation:      s.op,
		OperandA:       a,
		OperandB:       b,
		Steps:          len(s.seq.Targets()),
		Mistakes:       s.seq.Mistakes(),
		Duration:       now.Sub(s.startedAt),
		HomeworkItemID: s.homeworkItemID,
	}
}

// exerciseServiceImpl implements the ExerciseService interface
type exerciseServiceImpl struct {
	cfg      ExerciseServiceConfig
	homework HomeworkReader
	emitter  events.EventEmitter
	logger   *slog.Logger

	seed    uint64
	started atomic.Uint64

	mu       sync.RWMutex
	sessions map[uuid.UUID]*exerciseSession
}

var _ ExerciseService = (*exerciseServiceImpl)(nil)

// NewExerciseService creates a new ExerciseService.
// It returns an error if any of the required dependencies are nil.
func NewExerciseService(
	cfg ExerciseServiceConfig,
	homework HomeworkReader,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ExerciseService, error) {
	if homework == nil {
		return nil, NewServiceError("exercise", "create_service", errors.New("homework reader cannot be nil"))
	}
	if emitter == nil {
		return nil, NewServiceError("exercise", "create_service", errors.New("event emitter cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = DefaultReapInterval
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &exerciseServiceImpl{
		cfg:      cfg,
		homework: homework,
		emitter:  emitter,
		logger:   logger.With("component", "exercise_service"),
		seed:     seed,
		sessions: make(map[uuid.UUID]*exerciseSession),
	}, nil
}

// Start implements ExerciseService.Start
func (s *exerciseServiceImpl) Start(ctx context.Context, params StartExerciseParams) (*ExerciseView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	player := strings.TrimSpace(params.PlayerName)
	if player == "" {
		return nil, domain.ErrEmptyPlayerName
	}

	op, a, b, err := s.resolveExercise(ctx, player, params)
	if err != nil {
		return nil, err
	}

	p, err := practice.Build(op, a, b)
	if err != nil {
		log.Debug("exercise could not be planned",
			"operation", op,
			"operand_a", a,
			"operand_b", b,
			"error", err)
		return nil, err
	}

	now := s.cfg.Clock()
	sess := &exerciseSession{
		id:             uuid.New(),
		player:         player,
		op:             op,
		plan:           p,
		homeworkItemID: params.HomeworkItemID,
		startedAt:      now,
		lastActive:     now,
	}
	seq, err := sequencer.New(p.Targets(), guard.New(s.cfg.Guard), sess)
	if err != nil {
		return nil, NewServiceError("exercise", "start", err)
	}
	sess.seq = seq
	seq.Start()

	s.mu.Lock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		log.Warn("session registry full", "max_sessions", s.cfg.MaxSessions)
		return nil, ErrTooManySessions
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info("exercise started",
		"session_id", sess.id,
		"operation", op,
		"operand_a", a,
		"operand_b", b,
		"steps", len(p.Targets()))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.View(), nil
}

// resolveExercise picks the operation and operands for Start.
func (s *exerciseServiceImpl) resolveExercise(
	ctx context.Context,
	player string,
	params StartExerciseParams,
) (domain.Operation, int, int, error) {
	if params.HomeworkID != nil || params.HomeworkItemID != nil {
		if params.HomeworkID == nil || params.HomeworkItemID == nil {
			return "", 0, 0, fmt.Errorf("%w: homework and item must be given together", domain.ErrValidation)
		}
		item, err := s.homeworkItem(ctx, player, *params.HomeworkID, *params.HomeworkItemID)
		if err != nil {
			return "", 0, 0, err
		}
		return item.Operation, item.OperandA, item.OperandB, nil
	}

	if !params.Operation.Valid() {
		return "", 0, 0, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, params.Operation)
	}
	switch {
	case params.OperandA != nil && params.OperandB != nil:
		return params.Operation, *params.OperandA, *params.OperandB, nil
	case params.OperandA != nil || params.OperandB != nil:
		return "", 0, 0, fmt.Errorf("%w: both operands or neither must be given", domain.ErrValidation)
	}

	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	ops, err := s.sessionGenerator().Next(params.Operation, difficulty)
	if err != nil {
		return "", 0, 0, err
	}
	return params.Operation, ops.A, ops.B, nil
}

// sessionGenerator returns a generator owned by the session being started.
// Seeds step along a Weyl sequence so the nth start of a service is
// reproducible for a fixed Seed.
func (s *exerciseServiceImpl) sessionGenerator() *practice.Generator {
	n := s.started.Add(1)
	return practice.NewSeededGenerator(s.seed + n*0x9e3779b97f4a7c15)
}

// homeworkItem returns an open item of an assignment owned by player.
func (s *exerciseServiceImpl) homeworkItem(
	ctx context.Context,
	player string,
	homeworkID, itemID uuid.UUID,
) (domain.HomeworkItem, error) {
	h, err := s.homework.GetByID(ctx, homeworkID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.HomeworkItem{}, ErrHomeworkNotFound
		}
		return domain.HomeworkItem{}, NewServiceError("exercise", "start", err)
	}
	if h.PlayerName != player {
		return domain.HomeworkItem{}, ErrNotOwned
	}
	item, ok := h.Item(itemID)
	if !ok {
		return domain.HomeworkItem{}, ErrHomeworkNotFound
	}
	if item.Done() {
		return domain.HomeworkItem{}, ErrHomeworkItemDone
	}
	return item, nil
}

// session looks up a session and checks ownership.
func (s *exerciseServiceImpl) session(player string, id uuid.UUID) (*exerciseSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.player != strings.TrimSpace(player) {
		return nil, ErrNotOwned
	}
	return sess, nil
}

// Get implements ExerciseService.Get
func (s *exerciseServiceImpl) Get(ctx context.Context, player string, id uuid.UUID) (*ExerciseView, error) {
	sess, err := s.session(player, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.View(), nil
}

// Enter implements ExerciseService.Enter
func (s *exerciseServiceImpl) Enter(
	ctx context.Context,
	player string,
	id uuid.UUID,
	raw string,
) (*InputOutcome, error) {
	return s.apply(ctx, player, id, "enter", func(seq *sequencer.Sequencer, now time.Time) (sequencer.Outcome, error) {
		return seq.Enter(raw, now)
	})
}

// Act implements ExerciseService.Act
func (s *exerciseServiceImpl) Act(ctx context.Context, player string, id uuid.UUID) (*InputOutcome, error) {
	return s.apply(ctx, player, id, "act", func(seq *sequencer.Sequencer, now time.Time) (sequencer.Outcome, error) {
		return seq.Act(now)
	})
}

// apply runs one input against a session under its lock and emits the
// solved event after the lock is released.
func (s *exerciseServiceImpl) apply(
	ctx context.Context,
	player string,
	id uuid.UUID,
	kind string,
	input func(*sequencer.Sequencer, time.Time) (sequencer.Outcome, error),
) (*InputOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.session(player, id)
	if err != nil {
		return nil, err
	}

	now := s.cfg.Clock()
	sess.mu.Lock()
	sess.lastActive = now
	out, err := input(sess.seq, now)
	if err != nil {
		sess.mu.Unlock()
		log.Debug("input rejected",
			"session_id", id,
			"input", kind,
			"kind", guard.KindOf(err))
		return nil, err
	}
	result := &InputOutcome{
		Correct:   out.Correct,
		Locked:    out.Locked,
		Completed: out.Completed,
		Exercise:  sess.View(),
	}
	solved := sess.takeSolved(now)
	sess.mu.Unlock()

	log.Debug("input handled",
		"session_id", id,
		"input", kind,
		"index", out.Index,
		"correct", out.Correct,
		"locked", out.Locked)

	if solved != nil {
		s.emitSolved(ctx, solved)
	}
	return result, nil
}

// emitSolved publishes a solved exercise. Recording failures are logged;
// the learner's completed exercise stands regardless.
func (s *exerciseServiceImpl) emitSolved(ctx context.Context, solved *events.ExerciseSolved) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(events.TypeExerciseSolved, solved)
	if err != nil {
		log.Error("failed to create solved event", "error", err, "session_id", solved.SessionID)
		return
	}
	if err := s.emitter.EmitEvent(context.WithoutCancel(ctx), event); err != nil {
		log.Error("failed to record solved exercise",
			"error", err,
			"session_id", solved.SessionID,
			"event_id", event.ID)
		return
	}
	log.Info("exercise solved",
		"session_id", solved.SessionID,
		"operation", solved.Operation,
		"mistakes", solved.Mistakes,
		"duration", solved.Duration)
}

// Reset implements ExerciseService.Reset
func (s *exerciseServiceImpl) Reset(ctx context.Context, player string, id uuid.UUID) (*ExerciseView, error) {
	sess, err := s.session(player, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = s.cfg.Clock()
	sess.seq.Reset()

	logger.FromContextOrDefault(ctx, s.logger).Debug("exercise reset", "session_id", id)
	return sess.View(), nil
}

// Reap implements ExerciseService.Reap
func (s *exerciseServiceImpl) Reap(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastActive)
		sess.mu.Unlock()
		if idle >= s.cfg.IdleTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunReaper implements ExerciseService.RunReaper
func (s *exerciseServiceImpl) RunReaper(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.ReapInterval)
	defer ticker.Stop()

	s.logger.Info("session reaper started",
		"interval", s.cfg.ReapInterval,
		"idle_timeout", s.cfg.IdleTimeout)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session reaper stopped")
			return nil
		case <-ticker.C:
			if n := s.Reap(s.cfg.Clock()); n > 0 {
				s.logger.Info("reaped idle exercise sessions", "count", n)
			}
		}
	}
}
