package server

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrBadMap is returned by Load and LoadFile when the map text is not a
// well-formed rectangular grid of recognised glyphs.
var ErrBadMap = errors.New("badmap: malformed map")

// Map is an immutable rows x cols grid of cells, addressed either by
// (row, col) or by the compact integer id r*cols+c used on the wire and
// as a map/set key.
type Map struct {
	rows, cols int
	cells      []CellKind
}

// LoadFile reads a map from disk and parses it with Load. Grounded on the
// teacher's map_gen.go, which reads its room layout with a plain
// os.ReadFile before building an in-memory grid.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", path, err)
	}
	return Load(string(data))
}

// Load parses map text into a Map. Every line must have equal length and
// contain only recognised glyphs; otherwise it returns ErrBadMap.
func Load(text string) (*Map, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("%w: empty map", ErrBadMap)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	cols := len(lines[0])
	rows := len(lines)
	cells := make([]CellKind, rows*cols)

	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrBadMap, r, len(line), cols)
		}
		for c, ch := range line {
			kind, ok := glyphs[ch]
			if !ok {
				return nil, fmt.Errorf("%w: row %d col %d has unknown glyph %q", ErrBadMap, r, c, ch)
			}
			cells[r*cols+c] = kind
		}
	}

	return &Map{rows: rows, cols: cols, cells: cells}, nil
}

// Rows returns the number of grid rows.
func (m *Map) Rows() int { return m.rows }

// Cols returns the number of grid columns.
func (m *Map) Cols() int { return m.cols }

// valid reports whether id addresses a real cell.
func (m *Map) valid(id int) bool {
	return id >= 0 && id < len(m.cells)
}

// CellAt returns the cell kind at id. It returns Rock for an
// out-of-range id.
func (m *Map) CellAt(id int) CellKind {
	if !m.valid(id) {
		return Rock
	}
	return m.cells[id]
}

// IsTraversable reports whether id is a room-floor or passage cell.
func (m *Map) IsTraversable(id int) bool {
	return m.valid(id) && m.cells[id].Traversable()
}

// IsRoom reports whether id is a room-floor cell (a valid gold spot).
func (m *Map) IsRoom(id int) bool {
	return m.valid(id) && m.cells[id].Room()
}

// IDOf converts (r, c) to a compact cell id, or -1 if out of range.
func (m *Map) IDOf(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return -1
	}
	return r*m.cols + c
}

// Coords converts a cell id back to (r, c). Out-of-range ids return
// (-1, -1).
func (m *Map) Coords(id int) (r, c int) {
	if !m.valid(id) {
		return -1, -1
	}
	return id / m.cols, id % m.cols
}
