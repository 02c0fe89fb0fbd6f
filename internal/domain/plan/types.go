package plan

import (
	"errors"
	"fmt"
)

// Common planner errors
var (
	// ErrInvalidArgument is returned when a planner is called with operands
	// it cannot build a plan for.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNegativeDifference is returned by PlanSubtraction when the subtrahend
	// is larger than the minuend, leaving the borrow chain nothing to borrow from.
	ErrNegativeDifference = fmt.Errorf("%w: subtrahend exceeds minuend", ErrInvalidArgument)
)

// Zone names a region of the exercise grid.
type Zone string

// Grid zones shared by the planners.
const (
	// Division
	ZoneDividend  Zone = "dividend"
	ZoneDivisor   Zone = "divisor"
	ZoneQuotient  Zone = "quotient"
	ZoneProduct   Zone = "product"
	ZoneRemainder Zone = "remainder"

	// Column arithmetic
	ZoneTop       Zone = "top"
	ZoneBottom    Zone = "bottom"
	ZoneCarry     Zone = "carry"
	ZoneBorrow    Zone = "borrow"
	ZoneResult    Zone = "result"
	ZonePartial   Zone = "partial"
	ZoneSumCarry  Zone = "sum_carry"
	ZoneSumResult Zone = "sum"
)

// Cell addresses one square of the exercise grid.
//
// Row distinguishes repeated rows inside a zone (division step, partial
// product row). Col is the place value for column arithmetic (0 = units) and
// the left-to-right dividend index for division.
type Cell struct {
	Zone Zone `json:"zone" yaml:"zone"`
	Row  int  `json:"row" yaml:"row"`
	Col  int  `json:"col" yaml:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%s[%d,%d]", c.Zone, c.Row, c.Col)
}

// TargetKind identifies what a target asks the learner to do.
type TargetKind string

// Target kinds emitted by the planners.
const (
	KindQuotient     TargetKind = "QUOTIENT"
	KindProduct      TargetKind = "PRODUCT"
	KindRemainder    TargetKind = "REMAINDER"
	KindBringDown    TargetKind = "BRING_DOWN"
	KindPartialDigit TargetKind = "PARTIAL_DIGIT"
	KindCarry        TargetKind = "CARRY"
	KindResultDigit  TargetKind = "RESULT_DIGIT"
	KindBorrowDigit  TargetKind = "BORROW_NEW_TOP_DIGIT"
)

// NoDigit is the Expected value of an action-only target.
const NoDigit byte = 0

// Target is one atomic input the learner must produce.
type Target struct {
	Kind TargetKind `json:"kind" yaml:"kind"`
	Step int        `json:"step" yaml:"step"`
	Cell Cell       `json:"cell" yaml:"cell"`

	// Expected is the ASCII digit the learner must type, or NoDigit for
	// action targets.
	Expected byte `json:"-" yaml:"-"`

	// Writes is the character that appears in Cell once the target is done.
	// It equals Expected for digit targets; for a bring-down it is the digit
	// being brought down.
	Writes byte `json:"-" yaml:"-"`

	Hint       string `json:"hint" yaml:"hint"`
	Highlights []Cell `json:"highlights" yaml:"highlights"`
}

// IsAction reports whether the target is completed by an action rather than a digit.
func (t Target) IsAction() bool {
	return t.Expected == NoDigit
}

// ExpectedString returns the expected digit as a string, or "" for actions.
func (t Target) ExpectedString() string {
	if t.IsAction() {
		return ""
	}
	return string(t.Expected)
}

// Plan is the common view of every planner result.
type Plan interface {
	// Operands returns the two operands the plan was built from.
	Operands() (int, int)

	// Answer returns the final result as written in the grid.
	Answer() string

	// Targets returns the ordered input sequence.
	Targets() []Target
}

// digitsOf returns the decimal digits of a non-negative n, most significant first.
func digitsOf(n int) []int {
	if n == 0 {
		return []int{0}
	}
	var out []int
	for n > 0 {
		out = append([]int{n % 10}, out...)
		n /= 10
	}
	return out
}

// placeDigits returns the digits of n indexed by place value, zero-padded to width.
func placeDigits(n, width int) []int {
	out := make([]int, width)
	for i := 0; i < width; i++ {
		out[i] = n % 10
		n /= 10
	}
	return out
}

// width returns the number of decimal digits in a non-negative n.
func width(n int) int {
	return len(digitsOf(n))
}

func digitChar(d int) byte {
	return byte('0' + d)
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
