// Package sequencer drives the learner through a plan's targets one input at a time.
package sequencer

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/domain/plan"
)

// State is a position in the exercise lifecycle.
type State string

// Sequencer states.
const (
	StateInit          State = "INIT"
	StateAwaitingInput State = "AWAITING_INPUT"
	StateValidating    State = "VALIDATING"
	StateStepCompleted State = "STEP_COMPLETED"
	StateGameCompleted State = "GAME_COMPLETED"
)

// ErrNoTargets is returned by New for an empty target list.
var ErrNoTargets = errors.New("plan has no targets")

// Effects receives the side effects of input handling. Sound, dialogs and
// score bookkeeping hang off these hooks.
type Effects interface {
	Correct(index int, t plan.Target)
	Wrong(index int, t plan.Target)
	Solved()
	OnTransition(from, to State)
}

// NopEffects ignores every hook.
type NopEffects struct{}

func (NopEffects) Correct(int, plan.Target)  {}
func (NopEffects) Wrong(int, plan.Target)    {}
func (NopEffects) Solved()                   {}
func (NopEffects) OnTransition(State, State) {}

// Outcome describes what one input did.
type Outcome struct {
	Correct   bool
	Index     int
	Target    plan.Target
	Cursor    int
	Completed bool

	// Locked is set when this input exhausted the step's attempts.
	Locked bool
}

// Sequencer is the per-exercise input state machine. It is not safe for
// concurrent use.
type Sequencer struct {
	targets []plan.Target
	guard   *guard.Guard
	effects Effects

	state    State
	cursor   int
	errored  map[int]bool
	mistakes int
	solved   bool
}

// New creates a sequencer in StateInit.
func New(targets []plan.Target, g *guard.Guard, effects Effects) (*Sequencer, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if g == nil {
		g = guard.New(guard.Config{})
	}
	if effects == nil {
		effects = NopEffects{}
	}
	return &Sequencer{
		targets: targets,
		guard:   g,
		effects: effects,
		state:   StateInit,
		errored: make(map[int]bool),
	}, nil
}

// Start moves from StateInit to StateAwaitingInput.
func (s *Sequencer) Start() {
	if s.state == StateInit {
		s.transition(StateAwaitingInput)
	}
}

// State returns the current state.
func (s *Sequencer) State() State { return s.state }

// Cursor returns the index of the awaited target.
func (s *Sequencer) Cursor() int { return s.cursor }

// Targets returns the plan targets.
func (s *Sequencer) Targets() []plan.Target { return s.targets }

// Mistakes returns the number of wrong inputs since the last reset.
func (s *Sequencer) Mistakes() int { return s.mistakes }

// Current returns the awaited target. ok is false once the game is complete.
func (s *Sequencer) Current() (plan.Target, bool) {
	if s.cursor >= len(s.targets) {
		return plan.Target{}, false
	}
	return s.targets[s.cursor], true
}

// Errored reports whether the target at index is marked wrong.
func (s *Sequencer) Errored(index int) bool { return s.errored[index] }

// Locked reports whether the current step is locked out.
func (s *Sequencer) Locked() bool {
	return s.guard.IsLocked(guard.StepID(s.cursor))
}

// Enter submits one typed digit for the current target.
func (s *Sequencer) Enter(raw string, now time.Time) (Outcome, error) {
	if s.state != StateAwaitingInput {
		return Outcome{}, fmt.Errorf("%w: state is %s", guard.ErrNotAwaitingInput, s.state)
	}

	s.transition(StateValidating)
	step := guard.StepID(s.cursor)
	v, err := s.guard.ValidateUserInput(step, raw, 0, 9, now)
	if err != nil {
		s.transition(StateAwaitingInput)
		return Outcome{}, err
	}

	t := s.targets[s.cursor]
	return s.resolve(!t.IsAction() && t.Expected == byte('0'+v)), nil
}

// Act performs the action of the current target, such as a bring-down.
func (s *Sequencer) Act(now time.Time) (Outcome, error) {
	if s.state != StateAwaitingInput {
		return Outcome{}, fmt.Errorf("%w: state is %s", guard.ErrNotAwaitingInput, s.state)
	}

	s.transition(StateValidating)
	if err := s.guard.Check(guard.StepID(s.cursor), now); err != nil {
		s.transition(StateAwaitingInput)
		return Outcome{}, err
	}
	return s.resolve(s.targets[s.cursor].IsAction()), nil
}

func (s *Sequencer) resolve(match bool) Outcome {
	index := s.cursor
	t := s.targets[index]
	step := guard.StepID(index)

	if !match {
		s.errored[index] = true
		s.mistakes++
		locked := s.guard.RecordFailure(step)
		s.effects.Wrong(index, t)
		s.transition(StateAwaitingInput)
		return Outcome{Index: index, Target: t, Cursor: s.cursor, Locked: locked}
	}

	delete(s.errored, index)
	s.guard.RecordSuccess(step)
	s.cursor++
	s.effects.Correct(index, t)
	s.transition(StateStepCompleted)

	out := Outcome{Correct: true, Index: index, Target: t, Cursor: s.cursor}
	if s.cursor == len(s.targets) {
		s.transition(StateGameCompleted)
		if !s.solved {
			s.solved = true
			s.effects.Solved()
		}
		out.Completed = true
		return out
	}
	s.transition(StateAwaitingInput)
	return out
}

// Reset rewinds to the first target and clears errors and guard state.
// Solved still fires at most once per Sequencer.
func (s *Sequencer) Reset() {
	s.cursor = 0
	s.mistakes = 0
	clear(s.errored)
	s.guard.Reset()
	s.transition(StateAwaitingInput)
}

func (s *Sequencer) transition(to State) {
	from := s.state
	s.state = to
	if from != to {
		s.effects.OnTransition(from, to)
	}
}
