package plan

// Presentation helpers derive what the grid should show from a target list
// and a cursor. They never decide whose turn it is; that belongs to the
// sequencer.

// Grid maps cells to the characters written in them.
type Grid map[Cell]byte

// Replay writes the first n targets into a fresh grid.
func Replay(targets []Target, n int) Grid {
	if n > len(targets) {
		n = len(targets)
	}
	g := make(Grid, n)
	for _, t := range targets[:n] {
		g[t.Cell] = t.Writes
	}
	return g
}

// Row returns the characters written in one zone row, ordered by column.
// Columns with nothing written are returned as spaces. With placeValue set
// the highest column comes first, as a column sum is read.
func (g Grid) Row(zone Zone, row int, placeValue bool) string {
	lo, hi, found := 0, 0, false
	for c := range g {
		if c.Zone != zone || c.Row != row {
			continue
		}
		if !found || c.Col < lo {
			lo = c.Col
		}
		if !found || c.Col > hi {
			hi = c.Col
		}
		found = true
	}
	if !found {
		return ""
	}

	out := make([]byte, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		col := i
		if placeValue {
			col = hi - (i - lo)
		}
		ch, ok := g[Cell{Zone: zone, Row: row, Col: col}]
		if !ok {
			ch = ' '
		}
		out = append(out, ch)
	}
	return string(out)
}

// ActiveHighlights returns the cells to emphasise while the target at cursor
// is awaited. It returns nil once every target is done.
func ActiveHighlights(targets []Target, cursor int) []Cell {
	if cursor < 0 || cursor >= len(targets) {
		return nil
	}
	return targets[cursor].Highlights
}

// FadedCarries returns the carry cells that should be dimmed at cursor.
//
// A carry fades once it has been written and every target that reads it has
// been completed. A carry nobody reads stays visible.
func FadedCarries(targets []Target, cursor int) []Cell {
	var faded []Cell
	for i, t := range targets {
		if t.Kind != KindCarry || cursor <= i {
			continue
		}
		last := -1
		for j := i + 1; j < len(targets); j++ {
			if containsCell(targets[j].Highlights, t.Cell) {
				last = j
			}
		}
		if last >= 0 && cursor > last {
			faded = append(faded, t.Cell)
		}
	}
	return faded
}

func containsCell(cells []Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
