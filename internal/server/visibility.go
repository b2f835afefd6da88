package server

import "math"

// losEpsilon is the tolerance used when deciding whether a sight line
// crosses a grid line exactly on an integer row or column, matching the
// original engine's round-off allowance for its slope arithmetic.
const losEpsilon = 1e-9

// VisibleFrom computes the set of cell ids visible from viewer, including
// viewer itself, under the straight-line line-of-sight rule: cells sharing
// viewer's row or column are visible iff every cell strictly between them
// is room floor; other cells are visible iff every integer grid-line
// crossing of the line segment between viewer and the cell passes through
// room floor (or, straddling two rows/columns, through at least one room
// floor of the pair). A diagonally adjacent cell is visible unless both
// of the two cells flanking that seam are non-floor.
//
// While standing in a passage with no adjacent room floor, visibility is
// restricted to the 8 surrounding cells — the passage has no mouth to
// see further through.
func VisibleFrom(m *Map, viewer int) *CellSet {
	result := NewCellSet()
	result.Put(viewer)

	vr, vc := m.Coords(viewer)
	if vr < 0 {
		return result
	}

	if m.CellAt(viewer) == Passage && !passageHasFloorMouth(m, vr, vc) {
		eachNeighbor(vr, vc, func(r, c int) {
			if id := m.IDOf(r, c); id >= 0 {
				result.Put(id)
			}
		})
		return result
	}

	total := m.rows * m.cols
	for id := 0; id < total; id++ {
		if id == viewer {
			continue
		}
		tr, tc := m.Coords(id)
		if lineOfSight(m, vr, vc, tr, tc) {
			result.Put(id)
		}
	}
	return result
}

// UpdateView computes the cells currently visible from viewer and folds
// them into prev (the player's remembered set so far), returning both.
// prev may be nil, meaning the player has remembered nothing yet.
func UpdateView(m *Map, prev *CellSet, viewer int) (visible, remembered *CellSet) {
	visible = VisibleFrom(m, viewer)
	if prev == nil {
		remembered = visible.Clone()
		return
	}
	remembered = prev.Union(visible)
	return
}

func eachNeighbor(r, c int, f func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			f(r+dr, c+dc)
		}
	}
}

func passageHasFloorMouth(m *Map, vr, vc int) bool {
	mouth := false
	eachNeighbor(vr, vc, func(r, c int) {
		if mouth {
			return
		}
		if id := m.IDOf(r, c); id >= 0 && m.CellAt(id) == RoomFloor {
			mouth = true
		}
	})
	return mouth
}

// lineOfSight reports whether (r1,c1) is visible from (r0,c0).
func lineOfSight(m *Map, r0, c0, r1, c1 int) bool {
	if r0 == r1 {
		return clearRun(m, r0, c0, c1, true)
	}
	if c0 == c1 {
		return clearRun(m, c0, r0, r1, false)
	}

	if abs(r1-r0) == 1 && abs(c1-c0) == 1 {
		return !(m.CellAt(m.IDOf(r0, c1)) != RoomFloor && m.CellAt(m.IDOf(r1, c0)) != RoomFloor)
	}

	slope := float64(r1-r0) / float64(c1-c0)
	loC, hiC := orderedRange(c0, c1)
	for c := loC + 1; c < hiC; c++ {
		row := float64(r0) + float64(c-c0)*slope
		if blockedAtCrossing(m, row, c, true) {
			return false
		}
	}

	invSlope := float64(c1-c0) / float64(r1-r0)
	loR, hiR := orderedRange(r0, r1)
	for r := loR + 1; r < hiR; r++ {
		col := float64(c0) + float64(r-r0)*invSlope
		if blockedAtCrossing(m, col, r, false) {
			return false
		}
	}
	return true
}

// clearRun checks an axis-aligned sight line: every cell strictly between
// fixed and the two varying endpoints must be room floor.
func clearRun(m *Map, fixed, a, b int, fixedIsRow bool) bool {
	lo, hi := orderedRange(a, b)
	for v := lo + 1; v < hi; v++ {
		var id int
		if fixedIsRow {
			id = m.IDOf(fixed, v)
		} else {
			id = m.IDOf(v, fixed)
		}
		if m.CellAt(id) != RoomFloor {
			return false
		}
	}
	return true
}

func orderedRange(a, b int) (lo, hi int) {
	if a < b {
		return a, b
	}
	return b, a
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// blockedAtCrossing checks one crossing of the sight line with an integer
// grid line. When alongColumn is true, pos is the column being crossed
// and cross is the real-valued row where the line crosses it; otherwise
// pos is the row being crossed and cross is the real-valued column.
func blockedAtCrossing(m *Map, cross float64, pos int, alongColumn bool) bool {
	rounded := math.Round(cross)
	cellAt := func(a, b int) CellKind {
		if alongColumn {
			return m.CellAt(m.IDOf(a, b))
		}
		return m.CellAt(m.IDOf(b, a))
	}

	if math.Abs(cross-rounded) < losEpsilon {
		return cellAt(int(rounded), pos) != RoomFloor
	}

	lo := int(math.Floor(cross))
	hi := lo + 1
	loFloor := cellAt(lo, pos) == RoomFloor
	hiFloor := cellAt(hi, pos) == RoomFloor
	return !loFloor && !hiFloor
}
