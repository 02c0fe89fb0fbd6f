package plan

import (
	"fmt"
	"strings"
)

// DivisionStep is one round of the long-division algorithm.
type DivisionStep struct {
	Index int `json:"index" yaml:"index"`

	// StartCol and EndCol bound the dividend columns the partial spans.
	StartCol int `json:"start_col" yaml:"start_col"`
	EndCol   int `json:"end_col" yaml:"end_col"`

	Partial       int `json:"partial" yaml:"partial"`
	QuotientDigit int `json:"quotient_digit" yaml:"quotient_digit"`
	Product       int `json:"product" yaml:"product"`
	Remainder     int `json:"remainder" yaml:"remainder"`

	// BroughtDown is the dividend digit brought down after this step, or -1
	// when the dividend is exhausted.
	BroughtDown int `json:"brought_down" yaml:"brought_down"`
}

// DivisionPlan is the precomputed long-division solution for one exercise.
type DivisionPlan struct {
	Dividend  int            `json:"dividend" yaml:"dividend"`
	Divisor   int            `json:"divisor" yaml:"divisor"`
	Steps     []DivisionStep `json:"steps" yaml:"steps"`
	Quotient  string         `json:"quotient" yaml:"quotient"`
	Remainder int            `json:"remainder" yaml:"remainder"`

	targets []Target
}

var _ Plan = (*DivisionPlan)(nil)

// Operands implements Plan.
func (p *DivisionPlan) Operands() (int, int) { return p.Dividend, p.Divisor }

// Answer implements Plan. A non-zero remainder is written as "q R r".
func (p *DivisionPlan) Answer() string {
	if p.Remainder == 0 {
		return p.Quotient
	}
	return fmt.Sprintf("%s R %d", p.Quotient, p.Remainder)
}

// Targets implements Plan.
func (p *DivisionPlan) Targets() []Target { return p.targets }

// EstimateQuotientDigit returns the largest digit q with divisor*q <= partial.
//
// Single-digit divisors divide exactly. Wider divisors estimate from the
// leading digits of the partial over the divisor's leading digit, cap the
// guess at 9 and correct downwards. The estimate never undershoots, so the
// correction loop only ever decrements. The bound is checked by division so
// divisors near math.MaxInt cannot overflow the product.
func EstimateQuotientDigit(partial, divisor int) int {
	if divisor < 10 {
		q := partial / divisor
		if q > 9 {
			q = 9
		}
		return q
	}

	scale := pow10(width(divisor) - 1)
	leadingDivisor := divisor / scale
	q := (partial / scale) / leadingDivisor
	if q > 9 {
		q = 9
	}
	for q > 0 && q > partial/divisor {
		q--
	}
	return q
}

// PlanDivision builds the long-division plan for dividend ÷ divisor.
//
// It returns ErrInvalidArgument when divisor is zero or dividend is negative.
func PlanDivision(dividend, divisor int) (*DivisionPlan, error) {
	if divisor <= 0 {
		return nil, fmt.Errorf("%w: divisor must be positive, got %d", ErrInvalidArgument, divisor)
	}
	if dividend < 0 {
		return nil, fmt.Errorf("%w: dividend must not be negative, got %d", ErrInvalidArgument, dividend)
	}

	digits := digitsOf(dividend)
	steps := divisionSteps(digits, divisor)

	var quotient strings.Builder
	for _, s := range steps {
		quotient.WriteByte(digitChar(s.QuotientDigit))
	}
	q := strings.TrimLeft(quotient.String(), "0")
	if q == "" {
		q = "0"
	}

	p := &DivisionPlan{
		Dividend:  dividend,
		Divisor:   divisor,
		Steps:     steps,
		Quotient:  q,
		Remainder: steps[len(steps)-1].Remainder,
	}
	p.targets = divisionTargets(p, digits)
	return p, nil
}

func divisionSteps(digits []int, divisor int) []DivisionStep {
	// First partial: shortest prefix >= divisor, or the whole dividend.
	end := 0
	partial := digits[0]
	for partial < divisor && end+1 < len(digits) {
		end++
		partial = partial*10 + digits[end]
	}

	var steps []DivisionStep
	start := 0
	for {
		q := EstimateQuotientDigit(partial, divisor)
		product := q * divisor
		step := DivisionStep{
			Index:         len(steps),
			StartCol:      start,
			EndCol:        end,
			Partial:       partial,
			QuotientDigit: q,
			Product:       product,
			Remainder:     partial - product,
			BroughtDown:   -1,
		}

		if end+1 >= len(digits) {
			steps = append(steps, step)
			return steps
		}

		step.BroughtDown = digits[end+1]
		steps = append(steps, step)

		end++
		partial = step.Remainder*10 + digits[end]
		start = end - width(step.Remainder)
	}
}

// alignedCells returns the cells a number occupies when its last digit sits
// in column end.
func alignedCells(zone Zone, row, value, end int) []Cell {
	w := width(value)
	cells := make([]Cell, w)
	for i := 0; i < w; i++ {
		cells[i] = Cell{Zone: zone, Row: row, Col: end - w + 1 + i}
	}
	return cells
}

// partialCells returns the cells that justify a step's partial value.
func partialCells(p *DivisionPlan, s DivisionStep) []Cell {
	if s.Index == 0 {
		cells := make([]Cell, 0, s.EndCol-s.StartCol+1)
		for col := s.StartCol; col <= s.EndCol; col++ {
			cells = append(cells, Cell{Zone: ZoneDividend, Col: col})
		}
		return cells
	}
	prev := p.Steps[s.Index-1]
	cells := alignedCells(ZoneRemainder, prev.Index, prev.Remainder, prev.EndCol)
	return append(cells, Cell{Zone: ZoneRemainder, Row: prev.Index, Col: s.EndCol})
}

func divisorCells(divisor int) []Cell {
	w := width(divisor)
	cells := make([]Cell, w)
	for i := range cells {
		cells[i] = Cell{Zone: ZoneDivisor, Col: i}
	}
	return cells
}

func joinCells(groups ...[]Cell) []Cell {
	var out []Cell
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func divisionTargets(p *DivisionPlan, dividendDigits []int) []Target {
	divisor := divisorCells(p.Divisor)
	var targets []Target

	for _, s := range p.Steps {
		base := joinCells(partialCells(p, s), divisor)
		quotientCell := Cell{Zone: ZoneQuotient, Col: s.EndCol}

		targets = append(targets, Target{
			Kind:       KindQuotient,
			Step:       s.Index,
			Cell:       quotientCell,
			Expected:   digitChar(s.QuotientDigit),
			Writes:     digitChar(s.QuotientDigit),
			Hint:       fmt.Sprintf("How many times does %d go into %d?", p.Divisor, s.Partial),
			Highlights: base,
		})

		productCells := alignedCells(ZoneProduct, s.Index, s.Product, s.EndCol)
		productDigits := digitsOf(s.Product)
		for i, cell := range productCells {
			targets = append(targets, Target{
				Kind:     KindProduct,
				Step:     s.Index,
				Cell:     cell,
				Expected: digitChar(productDigits[i]),
				Writes:   digitChar(productDigits[i]),
				Hint: fmt.Sprintf("Multiply: %d × %d = %d",
					s.QuotientDigit, p.Divisor, s.Product),
				Highlights: joinCells(base, []Cell{quotientCell}),
			})
		}

		remainderDigits := digitsOf(s.Remainder)
		for i, cell := range alignedCells(ZoneRemainder, s.Index, s.Remainder, s.EndCol) {
			targets = append(targets, Target{
				Kind:     KindRemainder,
				Step:     s.Index,
				Cell:     cell,
				Expected: digitChar(remainderDigits[i]),
				Writes:   digitChar(remainderDigits[i]),
				Hint: fmt.Sprintf("Subtract: %d − %d = %d",
					s.Partial, s.Product, s.Remainder),
				Highlights: joinCells(base, productCells),
			})
		}

		if s.BroughtDown >= 0 {
			col := s.EndCol + 1
			targets = append(targets, Target{
				Kind:       KindBringDown,
				Step:       s.Index,
				Cell:       Cell{Zone: ZoneRemainder, Row: s.Index, Col: col},
				Expected:   NoDigit,
				Writes:     digitChar(dividendDigits[col]),
				Hint:       fmt.Sprintf("Bring down the %d", s.BroughtDown),
				Highlights: []Cell{{Zone: ZoneDividend, Col: col}},
			})
		}
	}
	return targets
}
