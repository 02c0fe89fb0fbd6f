package plan

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAddition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     int
		sequence string
		kinds    []TargetKind
	}{
		{478, 365, "31418", []TargetKind{KindResultDigit, KindCarry, KindResultDigit, KindCarry, KindResultDigit}},
		{999, 1, "0101011", nil},
		{12, 7, "91", []TargetKind{KindResultDigit, KindResultDigit}},
		{0, 0, "0", []TargetKind{KindResultDigit}},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d+%d", tc.a, tc.b), func(t *testing.T) {
			p, err := PlanAddition(tc.a, tc.b)
			require.NoError(t, err)

			assert.Equal(t, strconv.Itoa(tc.a+tc.b), p.Answer())
			assert.Equal(t, tc.sequence, expectedSequence(p.Targets()))
			if tc.kinds != nil {
				var kinds []TargetKind
				for _, tg := range p.Targets() {
					kinds = append(kinds, tg.Kind)
				}
				assert.Equal(t, tc.kinds, kinds)
			}

			grid := Replay(p.Targets(), len(p.Targets()))
			assert.Equal(t, p.Answer(), grid.Row(ZoneResult, 0, true))
		})
	}
}

func TestPlanAddition_CarryHighlights(t *testing.T) {
	t.Parallel()

	p, err := PlanAddition(478, 365)
	require.NoError(t, err)
	targets := p.Targets()

	assert.Equal(t, Cell{Zone: ZoneCarry, Col: 1}, targets[1].Cell)
	assert.Equal(t, []Cell{
		{Zone: ZoneTop, Col: 1},
		{Zone: ZoneBottom, Col: 1},
		{Zone: ZoneCarry, Col: 1},
	}, targets[2].Highlights)
	assert.Equal(t, "Add 7 + 6 + 1", targets[2].Hint)
}

func TestPlanAddition_RejectsNegative(t *testing.T) {
	t.Parallel()

	_, err := PlanAddition(-1, 4)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlanAddition_Overflow(t *testing.T) {
	t.Parallel()

	_, err := PlanAddition(math.MaxInt, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = PlanAddition(1, math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p, err := PlanAddition(math.MaxInt-1, 1)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(math.MaxInt), p.Answer())
	grid := Replay(p.Targets(), len(p.Targets()))
	assert.Equal(t, p.Answer(), grid.Row(ZoneResult, 0, true))
}

func TestPlanAddition_Property(t *testing.T) {
	t.Parallel()

	for a := 0; a <= 1200; a += 3 {
		for b := 0; b <= 1200; b += 13 {
			p, err := PlanAddition(a, b)
			require.NoError(t, err)

			targets := p.Targets()
			grid := Replay(targets, len(targets))
			require.Equal(t, strconv.Itoa(a+b), grid.Row(ZoneResult, 0, true), "%d + %d", a, b)
			require.Equal(t, strconv.Itoa(a+b), p.Answer())

			carries := map[int]bool{}
			for _, tg := range filterKind(targets, KindCarry) {
				carries[tg.Step] = true
			}
			for col, c := range p.Columns {
				require.Equal(t, c.CarryOut > 0, carries[col], "%d + %d column %d", a, b, col)
				require.Equal(t, c.Top+c.Bottom+c.CarryIn, c.Digit+10*c.CarryOut, "%d + %d column %d", a, b, col)
			}
		}
	}
}

func TestPlanSubtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     int
		sequence string
		borrows  []Cell
	}{
		{
			name: "borrow through zeros", a: 1000, b: 1, sequence: "099999",
			borrows: []Cell{{Zone: ZoneBorrow, Col: 3}, {Zone: ZoneBorrow, Col: 2}, {Zone: ZoneBorrow, Col: 1}},
		},
		{
			name: "borrow across a zero", a: 503, b: 278, sequence: "49522",
			borrows: []Cell{{Zone: ZoneBorrow, Col: 2}, {Zone: ZoneBorrow, Col: 1}},
		},
		{name: "no borrow", a: 87, b: 25, sequence: "26"},
		{name: "equal operands", a: 42, b: 42, sequence: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PlanSubtraction(tc.a, tc.b)
			require.NoError(t, err)

			assert.Equal(t, tc.sequence, expectedSequence(p.Targets()))

			var borrows []Cell
			for _, tg := range filterKind(p.Targets(), KindBorrowDigit) {
				borrows = append(borrows, tg.Cell)
			}
			assert.Equal(t, tc.borrows, borrows)
		})
	}
}

func TestPlanSubtraction_NegativeDifference(t *testing.T) {
	t.Parallel()

	_, err := PlanSubtraction(12, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeDifference)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPlanSubtraction_Property(t *testing.T) {
	t.Parallel()

	for a := 0; a <= 1200; a += 3 {
		for b := 0; b <= a; b += 11 {
			p, err := PlanSubtraction(a, b)
			require.NoError(t, err)

			targets := p.Targets()
			grid := Replay(targets, len(targets))
			require.Equal(t, strconv.Itoa(a-b), grid.Row(ZoneResult, 0, true), "%d − %d", a, b)

			for col, c := range p.Columns {
				borrowed := 0
				if c.Borrowed {
					borrowed = 10
				}
				require.Equal(t, c.Digit, c.NewTop+borrowed-c.Bottom, "%d − %d column %d", a, b, col)
			}

			// Every borrow is written before the result digit of the column
			// that needed it.
			resultAt := map[int]int{}
			for i, tg := range targets {
				if tg.Kind == KindResultDigit {
					resultAt[tg.Cell.Col] = i
				}
			}
			for i, tg := range targets {
				if tg.Kind != KindBorrowDigit {
					continue
				}
				at, ok := resultAt[tg.Step]
				require.True(t, ok, "%d − %d borrow for column %d", a, b, tg.Step)
				require.Less(t, i, at)
			}
		}
	}
}

func TestPlanSubtraction_Hints(t *testing.T) {
	t.Parallel()

	p, err := PlanSubtraction(503, 278)
	require.NoError(t, err)
	targets := p.Targets()

	assert.Equal(t, "Borrow one: 5 becomes 4", targets[0].Hint)
	assert.Equal(t, "Pass the ten along: 10 becomes 9", targets[1].Hint)
	assert.Equal(t, "Subtract 13 − 8", targets[2].Hint)

	// The tens result reads the rewritten top digit.
	assert.Equal(t, []Cell{{Zone: ZoneBorrow, Col: 1}, {Zone: ZoneBottom, Col: 1}}, targets[3].Highlights)
}
