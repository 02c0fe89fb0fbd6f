package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scoring constants for a solved exercise.
const (
	PointsPerStep     = 10
	PenaltyPerMistake = 5
	MinimumScore      = 10
)

// Common validation errors for ExerciseResult
var (
	ErrEmptyResultID      = errors.New("result ID cannot be empty")
	ErrInvalidResultSteps = errors.New("result must have at least one step")
	ErrNegativeMistakes   = errors.New("mistakes cannot be negative")
	ErrNegativeDuration   = errors.New("duration cannot be negative")
)

// ExerciseResult records one solved exercise for leaderboards and homework reports.
type ExerciseResult struct {
	ID             uuid.UUID     `json:"id"`
	PlayerName     string        `json:"player_name"`
	Operation      Operation     `json:"operation"`
	OperandA       int           `json:"operand_a"`
	OperandB       int           `json:"operand_b"`
	Steps          int           `json:"steps"`
	Mistakes       int           `json:"mistakes"`
	Score          int           `json:"score"`
	Duration       time.Duration `json:"duration"`
	HomeworkItemID *uuid.UUID    `json:"homework_item_id,omitempty"`
	CompletedAt    time.Time     `json:"completed_at"`
}

// ScoreFor awards PointsPerStep per target and subtracts PenaltyPerMistake
// per wrong input, never dropping below MinimumScore.
func ScoreFor(steps, mistakes int) int {
	score := steps*PointsPerStep - mistakes*PenaltyPerMistake
	if score < MinimumScore {
		return MinimumScore
	}
	return score
}

// NewExerciseResult creates a validated result with a fresh ID and computed score.
func NewExerciseResult(
	player string,
	op Operation,
	a, b, steps, mistakes int,
	duration time.Duration,
) (*ExerciseResult, error) {
	r := &ExerciseResult{
		ID:          uuid.New(),
		PlayerName:  strings.TrimSpace(player),
		Operation:   op,
		OperandA:    a,
		OperandB:    b,
		Steps:       steps,
		Mistakes:    mistakes,
		Score:       ScoreFor(steps, mistakes),
		Duration:    duration,
		CompletedAt: time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks if the ExerciseResult has valid data.
func (r *ExerciseResult) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyResultID
	}
	if strings.TrimSpace(r.PlayerName) == "" {
		return ErrEmptyPlayerName
	}
	if !r.Operation.Valid() {
		return ErrInvalidOperation
	}
	if r.Steps < 1 {
		return ErrInvalidResultSteps
	}
	if r.Mistakes < 0 {
		return ErrNegativeMistakes
	}
	if r.Duration < 0 {
		return ErrNegativeDuration
	}
	return nil
}
