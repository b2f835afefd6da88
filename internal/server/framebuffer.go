package server

// renderFramebuffer draws one viewer's DISPLAY body: rows joined by '\n',
// one glyph per cell. wholeMap bypasses remembered/visible filtering
// entirely, the observer's view of the board.
//
// For a player, a cell never in remembered draws as a blank space; a
// remembered-but-not-currently-visible cell draws its static terrain;
// a currently visible cell draws whatever occupies it now: the viewer's
// own '@', another player's letter, a gold pile's '*', or terrain.
func renderFramebuffer(m *Map, remembered, visible *CellSet, locations map[int]byte, gold *GoldPool, viewerCell int, wholeMap bool) string {
	out := make([]byte, 0, m.Rows()*(m.Cols()+1))
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			id := m.IDOf(r, c)
			out = append(out, glyphAt(m, id, remembered, visible, locations, gold, viewerCell, wholeMap))
		}
		if r < m.Rows()-1 {
			out = append(out, '\n')
		}
	}
	return string(out)
}

func glyphAt(m *Map, id int, remembered, visible *CellSet, locations map[int]byte, gold *GoldPool, viewerCell int, wholeMap bool) byte {
	if !wholeMap {
		if remembered == nil || !remembered.Has(id) {
			return ' '
		}
		if visible == nil || !visible.Has(id) {
			return byte(m.CellAt(id).Rune())
		}
	}

	if id == viewerCell {
		return '@'
	}
	if letter, ok := locations[id]; ok {
		return letter
	}
	if gold != nil && gold.AtCell(id) > 0 {
		return '*'
	}
	return byte(m.CellAt(id).Rune())
}
