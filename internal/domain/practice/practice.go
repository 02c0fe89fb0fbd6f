// Package practice connects operations to their planners and generates
// operands for new exercises.
package practice

import (
	"fmt"
	"math/rand/v2"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/plan"
)

// Build runs the planner for op.
func Build(op domain.Operation, a, b int) (plan.Plan, error) {
	switch op {
	case domain.OperationAddition:
		return plan.PlanAddition(a, b)
	case domain.OperationSubtraction:
		return plan.PlanSubtraction(a, b)
	case domain.OperationMultiplication:
		return plan.PlanMultiplication(a, b)
	case domain.OperationDivision:
		return plan.PlanDivision(a, b)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, op)
	}
}

// Operands is a generated operand pair.
type Operands struct {
	A int
	B int
}

// Generator draws operands from a caller-owned random source. A Generator is
// scoped to one session and is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wraps rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator creates a Generator with a deterministic PCG source.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Next returns operands for op at the given difficulty.
func (g *Generator) Next(op domain.Operation, d domain.Difficulty) (Operands, error) {
	switch op {
	case domain.OperationAddition:
		w := digitsFor(d)
		return Operands{A: g.withDigits(w), B: g.withDigits(w)}, nil
	case domain.OperationSubtraction:
		w := digitsFor(d)
		a, b := g.withDigits(w), g.withDigits(w)
		if b > a {
			a, b = b, a
		}
		return Operands{A: a, B: b}, nil
	case domain.OperationMultiplication:
		return Operands{A: g.between(plan.MinFactor, plan.MaxFactor), B: g.between(plan.MinFactor, plan.MaxFactor)}, nil
	case domain.OperationDivision:
		var divisor int
		switch d {
		case domain.DifficultyHard:
			divisor = g.between(10, 39)
		default:
			divisor = g.between(2, 9)
		}
		w := 3
		if d != domain.DifficultyEasy {
			w = 4
		}
		return Operands{A: g.withDigits(w), B: divisor}, nil
	default:
		return Operands{}, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, op)
	}
}

// digitsFor maps difficulty to operand width for addition and subtraction.
func digitsFor(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyEasy:
		return 2
	case domain.DifficultyHard:
		return 4
	default:
		return 3
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// withDigits returns a number with exactly w digits.
func (g *Generator) withDigits(w int) int {
	lo := 1
	for i := 1; i < w; i++ {
		lo *= 10
	}
	return g.between(lo, lo*10-1)
}
