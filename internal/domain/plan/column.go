package plan

import (
	"fmt"
	"math"
	"strconv"
)

// AdditionColumn is one place-value column of a long addition.
type AdditionColumn struct {
	Top      int `json:"top" yaml:"top"`
	Bottom   int `json:"bottom" yaml:"bottom"`
	CarryIn  int `json:"carry_in" yaml:"carry_in"`
	Digit    int `json:"digit" yaml:"digit"`
	CarryOut int `json:"carry_out" yaml:"carry_out"`
}

// AdditionPlan is the column-wise solution of a + b.
type AdditionPlan struct {
	A     int `json:"a" yaml:"a"`
	B     int `json:"b" yaml:"b"`
	Width int `json:"width" yaml:"width"`

	// Columns are indexed by place value.
	Columns []AdditionColumn `json:"columns" yaml:"columns"`
	Sum     int              `json:"sum" yaml:"sum"`

	targets []Target
}

var _ Plan = (*AdditionPlan)(nil)

// Operands implements Plan.
func (p *AdditionPlan) Operands() (int, int) { return p.A, p.B }

// Answer implements Plan.
func (p *AdditionPlan) Answer() string { return strconv.Itoa(p.Sum) }

// Targets implements Plan.
func (p *AdditionPlan) Targets() []Target { return p.targets }

// PlanAddition builds the long-addition plan for a + b, zero-padding both
// operands to the wider one.
//
// It returns ErrInvalidArgument when an addend is negative or the sum does
// not fit in an int.
func PlanAddition(a, b int) (*AdditionPlan, error) {
	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: addends must not be negative, got %d and %d",
			ErrInvalidArgument, a, b)
	}
	if a > math.MaxInt-b {
		return nil, fmt.Errorf("%w: sum of %d and %d overflows", ErrInvalidArgument, a, b)
	}

	w := max(width(a), width(b))
	top, bottom := placeDigits(a, w), placeDigits(b, w)
	p := &AdditionPlan{A: a, B: b, Width: w, Sum: a + b}

	carry := 0
	for col := 0; col < w; col++ {
		v := top[col] + bottom[col] + carry
		p.Columns = append(p.Columns, AdditionColumn{
			Top:      top[col],
			Bottom:   bottom[col],
			CarryIn:  carry,
			Digit:    v % 10,
			CarryOut: v / 10,
		})
		carry = v / 10
	}

	for col, c := range p.Columns {
		sources := []Cell{{Zone: ZoneTop, Col: col}, {Zone: ZoneBottom, Col: col}}
		hint := fmt.Sprintf("Add %d + %d", c.Top, c.Bottom)
		if c.CarryIn > 0 {
			sources = append(sources, Cell{Zone: ZoneCarry, Col: col})
			hint += fmt.Sprintf(" + %d", c.CarryIn)
		}

		p.targets = append(p.targets, digitTarget(KindResultDigit, col,
			Cell{Zone: ZoneResult, Col: col}, c.Digit, hint, sources))
		if c.CarryOut > 0 {
			p.targets = append(p.targets, digitTarget(KindCarry, col,
				Cell{Zone: ZoneCarry, Col: col + 1}, c.CarryOut,
				fmt.Sprintf("Carry the %d", c.CarryOut), sources))
		}
	}

	if carry > 0 {
		p.targets = append(p.targets, digitTarget(KindResultDigit, w,
			Cell{Zone: ZoneResult, Col: w}, carry,
			fmt.Sprintf("Write the carried %d", carry),
			[]Cell{{Zone: ZoneCarry, Col: w}}))
	}
	return p, nil
}

// SubtractionColumn is one place-value column of a long subtraction.
type SubtractionColumn struct {
	// Top is the original minuend digit.
	Top    int `json:"top" yaml:"top"`
	Bottom int `json:"bottom" yaml:"bottom"`

	// NewTop is the top digit after it lent to the column on its right.
	// It equals Top when BorrowChanged is false.
	NewTop        int  `json:"new_top" yaml:"new_top"`
	BorrowChanged bool `json:"borrow_changed" yaml:"borrow_changed"`

	// Borrowed is set when the column received ten from its left neighbour.
	Borrowed bool `json:"borrowed" yaml:"borrowed"`

	Digit int `json:"digit" yaml:"digit"`
}

// SubtractionPlan is the column-wise solution of a − b.
type SubtractionPlan struct {
	A     int `json:"a" yaml:"a"`
	B     int `json:"b" yaml:"b"`
	Width int `json:"width" yaml:"width"`

	// Columns are indexed by place value.
	Columns    []SubtractionColumn `json:"columns" yaml:"columns"`
	Difference int                 `json:"difference" yaml:"difference"`

	targets []Target
}

var _ Plan = (*SubtractionPlan)(nil)

// Operands implements Plan.
func (p *SubtractionPlan) Operands() (int, int) { return p.A, p.B }

// Answer implements Plan.
func (p *SubtractionPlan) Answer() string { return strconv.Itoa(p.Difference) }

// Targets implements Plan.
func (p *SubtractionPlan) Targets() []Target { return p.targets }

// PlanSubtraction builds the long-subtraction plan for a − b.
//
// The borrow chain walks left through zero digits until it finds a digit to
// lend. Every top digit it changes gets a BORROW_NEW_TOP_DIGIT target ahead of
// the result digit that needed the borrow. b > a leaves the chain without a
// lender and is rejected with ErrNegativeDifference.
func PlanSubtraction(a, b int) (*SubtractionPlan, error) {
	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: operands must not be negative, got %d and %d",
			ErrInvalidArgument, a, b)
	}
	if b > a {
		return nil, fmt.Errorf("%w: %d − %d", ErrNegativeDifference, a, b)
	}

	w := max(width(a), width(b))
	top, bottom := placeDigits(a, w), placeDigits(b, w)
	working := make([]int, w)
	copy(working, top)

	p := &SubtractionPlan{A: a, B: b, Width: w, Difference: a - b}
	p.Columns = make([]SubtractionColumn, w)
	for col := range p.Columns {
		p.Columns[col] = SubtractionColumn{Top: top[col], Bottom: bottom[col], NewTop: top[col]}
	}

	highest := width(p.Difference) - 1
	for col := 0; col < w; col++ {
		var sources []Cell
		if working[col] < bottom[col] {
			lender := col + 1
			for working[lender] == 0 {
				lender++
			}

			// Walk back from the lender, rewriting every top digit on the way.
			for k := lender; k > col; k-- {
				if k == lender {
					working[k]--
				} else {
					working[k] = 9
				}
				p.Columns[k].NewTop = working[k]
				p.Columns[k].BorrowChanged = true

				p.targets = append(p.targets, digitTarget(KindBorrowDigit, col,
					Cell{Zone: ZoneBorrow, Col: k}, working[k],
					borrowHint(k, lender, top[k], working[k]),
					[]Cell{{Zone: ZoneTop, Col: k}, {Zone: ZoneTop, Col: col}, {Zone: ZoneBottom, Col: col}}))
			}
			working[col] += 10
			p.Columns[col].Borrowed = true
		}

		d := working[col] - bottom[col]
		p.Columns[col].Digit = d
		if col > highest {
			continue
		}

		if p.Columns[col].BorrowChanged {
			sources = append(sources, Cell{Zone: ZoneBorrow, Col: col})
		} else {
			sources = append(sources, Cell{Zone: ZoneTop, Col: col})
		}
		sources = append(sources, Cell{Zone: ZoneBottom, Col: col})

		p.targets = append(p.targets, digitTarget(KindResultDigit, col,
			Cell{Zone: ZoneResult, Col: col}, d,
			fmt.Sprintf("Subtract %d − %d", working[col], bottom[col]), sources))
	}
	return p, nil
}

func borrowHint(col, lender, was, now int) string {
	if col == lender {
		return fmt.Sprintf("Borrow one: %d becomes %d", was, now)
	}
	return fmt.Sprintf("Pass the ten along: %d becomes %d", was+10, now)
}
