package plan

import (
	"fmt"
	"strconv"
)

// Multiplication factor bounds.
const (
	MinFactor = 10
	MaxFactor = 99
)

// Partial product rows.
const (
	RowUnits = 0 // a × units digit of b
	RowTens  = 1 // a × tens digit of b, shifted one column
)

// ProductRow is one partial product with its carry chain, indexed by place value.
type ProductRow struct {
	// Multiplier is the digit of b this row multiplies a by.
	Multiplier int `json:"multiplier" yaml:"multiplier"`

	// Shift is the number of columns the row is moved left.
	Shift int `json:"shift" yaml:"shift"`

	// Digits are the written digits by absolute column. Columns below Shift
	// hold the placeholder dash and are reported as -1.
	Digits []int `json:"digits" yaml:"digits"`

	// Carries holds the carry written above each absolute column (0 = none).
	Carries []int `json:"carries" yaml:"carries"`

	Value int `json:"value" yaml:"value"`
}

// MultiplicationPlan is the long-multiplication solution for a 2-digit × 2-digit product.
type MultiplicationPlan struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`

	Rows [2]ProductRow `json:"rows" yaml:"rows"`

	// SumDigits and SumCarries are indexed by place value.
	SumDigits  []int `json:"sum_digits" yaml:"sum_digits"`
	SumCarries []int `json:"sum_carries" yaml:"sum_carries"`
	Product    int   `json:"product" yaml:"product"`

	targets []Target
}

var _ Plan = (*MultiplicationPlan)(nil)

// Operands implements Plan.
func (p *MultiplicationPlan) Operands() (int, int) { return p.A, p.B }

// Answer implements Plan.
func (p *MultiplicationPlan) Answer() string { return strconv.Itoa(p.Product) }

// Targets implements Plan.
func (p *MultiplicationPlan) Targets() []Target { return p.targets }

// PlanMultiplication builds the grid-school plan for a × b with a, b in [10, 99].
func PlanMultiplication(a, b int) (*MultiplicationPlan, error) {
	if a < MinFactor || a > MaxFactor || b < MinFactor || b > MaxFactor {
		return nil, fmt.Errorf("%w: factors must be in [%d, %d], got %d and %d",
			ErrInvalidArgument, MinFactor, MaxFactor, a, b)
	}

	p := &MultiplicationPlan{A: a, B: b, Product: a * b}
	p.Rows[RowUnits] = productRow(a, b%10, 0)
	p.Rows[RowTens] = productRow(a, b/10, 1)
	p.SumDigits, p.SumCarries = sumRows(p.Rows)
	p.targets = multiplicationTargets(p)
	return p, nil
}

// productRow multiplies the two digits of a by one digit, right to left.
func productRow(a, multiplier, shift int) ProductRow {
	row := ProductRow{
		Multiplier: multiplier,
		Shift:      shift,
		Digits:     make([]int, shift+3),
		Carries:    make([]int, shift+3),
		Value:      a * multiplier * pow10(shift),
	}
	for col := 0; col < shift; col++ {
		row.Digits[col] = -1
	}

	aDigits := placeDigits(a, 2)
	carry := 0
	for i, d := range aDigits {
		v := d*multiplier + carry
		row.Digits[shift+i] = v % 10
		carry = v / 10
		row.Carries[shift+i+1] = carry
	}
	// The last carry is written as the leading digit, not above the row.
	row.Carries[shift+2] = 0
	row.Digits[shift+2] = carry
	return row
}

// sumRows adds the partial products column by column.
func sumRows(rows [2]ProductRow) ([]int, []int) {
	const cols = 4
	digits := make([]int, cols)
	carries := make([]int, cols+1)
	carry := 0
	for col := 0; col < cols; col++ {
		v := carry
		for _, r := range rows {
			if col < len(r.Digits) && r.Digits[col] > 0 {
				v += r.Digits[col]
			}
		}
		digits[col] = v % 10
		carry = v / 10
		carries[col+1] = carry
	}
	return digits, carries[:cols]
}

func factorCell(zone Zone, col int) Cell {
	return Cell{Zone: zone, Col: col}
}

func multiplicationTargets(p *MultiplicationPlan) []Target {
	var targets []Target

	// Step is the phase: one per partial product row, then the sum.
	for r, row := range p.Rows {
		step := r
		bCell := factorCell(ZoneBottom, r)
		for i := 0; i < 2; i++ {
			col := row.Shift + i
			aCell := factorCell(ZoneTop, i)
			sources := []Cell{aCell, bCell}
			if in := row.Carries[col]; in > 0 {
				sources = append(sources, Cell{Zone: ZoneCarry, Row: r, Col: col})
			}

			aDigit := placeDigits(p.A, 2)[i]
			targets = append(targets, digitTarget(KindPartialDigit, step,
				Cell{Zone: ZonePartial, Row: r, Col: col}, row.Digits[col],
				multiplyHint(aDigit, row.Multiplier, row.Carries[col]), sources))

			if i == 0 {
				if c := row.Carries[col+1]; c > 0 {
					targets = append(targets, digitTarget(KindCarry, step,
						Cell{Zone: ZoneCarry, Row: r, Col: col + 1}, c,
						fmt.Sprintf("Carry the %d", c), sources))
				}
			} else if lead := row.Digits[col+1]; lead > 0 {
				targets = append(targets, digitTarget(KindPartialDigit, step,
					Cell{Zone: ZonePartial, Row: r, Col: col + 1}, lead,
					fmt.Sprintf("Write the %d in front", lead), sources))
			}
		}
	}

	step := len(p.Rows)
	for col := 0; col < len(p.SumDigits); col++ {
		d := p.SumDigits[col]
		if col == len(p.SumDigits)-1 && d == 0 {
			break
		}

		var sources []Cell
		var addends []int
		for r, row := range p.Rows {
			if col < len(row.Digits) && row.Digits[col] >= 0 && rowWrites(row, col) {
				sources = append(sources, Cell{Zone: ZonePartial, Row: r, Col: col})
				addends = append(addends, row.Digits[col])
			}
		}
		if in := p.SumCarries[col]; in > 0 {
			sources = append(sources, Cell{Zone: ZoneSumCarry, Col: col})
			addends = append(addends, in)
		}

		targets = append(targets, digitTarget(KindResultDigit, step,
			Cell{Zone: ZoneSumResult, Col: col}, d, addHint(addends), sources))

		if col+1 < len(p.SumCarries) {
			if c := p.SumCarries[col+1]; c > 0 {
				targets = append(targets, digitTarget(KindCarry, step,
					Cell{Zone: ZoneSumCarry, Col: col + 1}, c,
					fmt.Sprintf("Carry the %d", c), sources))
			}
		}
	}
	return targets
}

// rowWrites reports whether a partial product row has a written digit in col.
func rowWrites(row ProductRow, col int) bool {
	if col < row.Shift {
		return false
	}
	if col == row.Shift+2 {
		return row.Digits[col] > 0
	}
	return true
}

func digitTarget(kind TargetKind, step int, cell Cell, digit int, hint string, highlights []Cell) Target {
	hl := make([]Cell, len(highlights))
	copy(hl, highlights)
	return Target{
		Kind:       kind,
		Step:       step,
		Cell:       cell,
		Expected:   digitChar(digit),
		Writes:     digitChar(digit),
		Hint:       hint,
		Highlights: hl,
	}
}

func multiplyHint(a, b, carry int) string {
	if carry > 0 {
		return fmt.Sprintf("Multiply %d × %d and add the carried %d", a, b, carry)
	}
	return fmt.Sprintf("Multiply %d × %d", a, b)
}

func addHint(addends []int) string {
	hint := "Add"
	for i, a := range addends {
		if i == 0 {
			hint += fmt.Sprintf(" %d", a)
		} else {
			hint += fmt.Sprintf(" + %d", a)
		}
	}
	return hint
}
