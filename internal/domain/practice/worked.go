package practice

import (
	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/plan"
)

// WorkedStep is one target of a worked solution, with its expected input.
type WorkedStep struct {
	Index      int             `json:"index" yaml:"index"`
	Kind       plan.TargetKind `json:"kind" yaml:"kind"`
	Step       int             `json:"step" yaml:"step"`
	Cell       plan.Cell       `json:"cell" yaml:"cell"`
	Action     bool            `json:"action" yaml:"action"`
	Expected   string          `json:"expected,omitempty" yaml:"expected,omitempty"`
	Writes     string          `json:"writes" yaml:"writes"`
	Hint       string          `json:"hint" yaml:"hint"`
	Highlights []plan.Cell     `json:"highlights" yaml:"highlights"`
}

// Worked is a complete solution: the planner's detail plus every target in order.
type Worked struct {
	Operation domain.Operation `json:"operation" yaml:"operation"`
	OperandA  int              `json:"operand_a" yaml:"operand_a"`
	OperandB  int              `json:"operand_b" yaml:"operand_b"`
	Answer    string           `json:"answer" yaml:"answer"`
	Detail    plan.Plan        `json:"detail" yaml:"detail"`
	Steps     []WorkedStep     `json:"steps" yaml:"steps"`
}

// Work builds the plan for op and lays out its worked solution.
func Work(op domain.Operation, a, b int) (*Worked, error) {
	p, err := Build(op, a, b)
	if err != nil {
		return nil, err
	}

	targets := p.Targets()
	steps := make([]WorkedStep, len(targets))
	for i, t := range targets {
		steps[i] = WorkedStep{
			Index:      i,
			Kind:       t.Kind,
			Step:       t.Step,
			Cell:       t.Cell,
			Action:     t.IsAction(),
			Expected:   t.ExpectedString(),
			Writes:     string(t.Writes),
			Hint:       t.Hint,
			Highlights: t.Highlights,
		}
	}

	pa, pb := p.Operands()
	return &Worked{
		Operation: op,
		OperandA:  pa,
		OperandB:  pb,
		Answer:    p.Answer(),
		Detail:    p,
		Steps:     steps,
	}, nil
}
