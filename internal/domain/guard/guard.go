// Package guard rate-limits and attempt-limits learner input per exercise step.
//
// A Guard belongs to one exercise session. It is not safe for concurrent use;
// callers serialise access per session.
package guard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FailureKind classifies why an input was rejected.
type FailureKind string

// Failure kinds surfaced to the learner as an inline retry prompt.
const (
	KindNone             FailureKind = ""
	KindInvalidArgument  FailureKind = "INVALID_ARGUMENT"
	KindEmpty            FailureKind = "EMPTY"
	KindNonNumeric       FailureKind = "NON_NUMERIC"
	KindOutOfRange       FailureKind = "OUT_OF_RANGE"
	KindNotAwaitingInput FailureKind = "NOT_AWAITING_INPUT"
	KindTooFast          FailureKind = "TOO_FAST"
	KindTooManyAttempts  FailureKind = "TOO_MANY_ATTEMPTS"
)

// Input validation errors.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrEmpty            = errors.New("input is empty")
	ErrNonNumeric       = errors.New("input is not a number")
	ErrOutOfRange       = errors.New("input is out of range")
	ErrNotAwaitingInput = errors.New("not awaiting input")
	ErrTooFast          = errors.New("input submitted too fast")
	ErrTooManyAttempts  = errors.New("too many attempts on this step")
)

var kinds = []struct {
	err  error
	kind FailureKind
}{
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrEmpty, KindEmpty},
	{ErrNonNumeric, KindNonNumeric},
	{ErrOutOfRange, KindOutOfRange},
	{ErrNotAwaitingInput, KindNotAwaitingInput},
	{ErrTooFast, KindTooFast},
	{ErrTooManyAttempts, KindTooManyAttempts},
}

// KindOf returns the failure kind carried by err, or KindNone.
func KindOf(err error) FailureKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindNone
}

// Defaults used when Config leaves a field zero.
const (
	DefaultMinInterval = 400 * time.Millisecond
	DefaultMaxAttempts = 3
)

// Config tunes a Guard.
type Config struct {
	// MinInterval is the minimum time between two inputs on the same step.
	MinInterval time.Duration

	// MaxAttempts is the number of consecutive failures that locks a step.
	MaxAttempts int
}

// StepID identifies a step; the planners' target index is used.
type StepID int

// Guard tracks input timing and failures per step.
type Guard struct {
	minInterval time.Duration
	maxAttempts int

	lastInputAt map[StepID]time.Time
	attempts    map[StepID]int
	locked      map[StepID]bool
}

// New creates a Guard, applying defaults for zero fields.
func New(cfg Config) *Guard {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultMinInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Guard{
		minInterval: cfg.MinInterval,
		maxAttempts: cfg.MaxAttempts,
		lastInputAt: make(map[StepID]time.Time),
		attempts:    make(map[StepID]int),
		locked:      make(map[StepID]bool),
	}
}

// Parse turns raw input into an integer within [min, max].
func Parse(raw string, min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("%w: range [%d, %d] is empty", ErrInvalidArgument, min, max)
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmpty
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, min, max)
	}
	return v, nil
}

// Check applies the lockout and rate limit for step and records the input
// time when it passes. Rejected inputs do not move the rate-limit window.
func (g *Guard) Check(step StepID, now time.Time) error {
	if g.locked[step] {
		return ErrTooManyAttempts
	}
	if last, ok := g.lastInputAt[step]; ok && now.Sub(last) < g.minInterval {
		return fmt.Errorf("%w: wait %s", ErrTooFast, g.minInterval-now.Sub(last))
	}
	g.lastInputAt[step] = now
	return nil
}

// ValidateUserInput parses raw and then checks the step's limits.
func (g *Guard) ValidateUserInput(step StepID, raw string, min, max int, now time.Time) (int, error) {
	v, err := Parse(raw, min, max)
	if err != nil {
		return 0, err
	}
	if err := g.Check(step, now); err != nil {
		return 0, err
	}
	return v, nil
}

// RecordFailure counts a wrong answer on step and reports whether the step is
// now locked.
func (g *Guard) RecordFailure(step StepID) bool {
	g.attempts[step]++
	if g.attempts[step] >= g.maxAttempts {
		g.locked[step] = true
	}
	return g.locked[step]
}

// RecordSuccess clears the failure count for step.
func (g *Guard) RecordSuccess(step StepID) {
	delete(g.attempts, step)
}

// Attempts returns the consecutive failures recorded for step.
func (g *Guard) Attempts(step StepID) int {
	return g.attempts[step]
}

// IsLocked reports whether step has been locked out.
func (g *Guard) IsLocked(step StepID) bool {
	return g.locked[step]
}

// Reset forgets all timing, attempts and locks.
func (g *Guard) Reset() {
	clear(g.lastInputAt)
	clear(g.attempts)
	clear(g.locked)
}
