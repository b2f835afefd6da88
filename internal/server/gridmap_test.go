package server

import "testing"

const sampleMap = "" +
	"+-------+   \n" +
	"|.......|   \n" +
	"|.......+###\n" +
	"|.......|   \n" +
	"+-------+   \n"

func TestLoadRejectsRaggedRows(t *testing.T) {
	_, err := Load("...\n..\n")
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
}

func TestLoadRejectsUnknownGlyph(t *testing.T) {
	_, err := Load("...\n.X.\n...\n")
	if err == nil {
		t.Fatal("expected error for unknown glyph")
	}
}

func TestLoadAndCellAt(t *testing.T) {
	m, err := Load(sampleMap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Rows() != 5 || m.Cols() != 12 {
		t.Fatalf("got %dx%d", m.Rows(), m.Cols())
	}
	if m.CellAt(m.IDOf(0, 0)) != Corner {
		t.Fatalf("want corner at (0,0)")
	}
	if !m.IsTraversable(m.IDOf(1, 1)) || !m.IsRoom(m.IDOf(1, 1)) {
		t.Fatalf("want (1,1) traversable room floor")
	}
	if !m.IsTraversable(m.IDOf(2, 9)) || m.IsRoom(m.IDOf(2, 9)) {
		t.Fatalf("want (2,9) traversable passage, not a room")
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	m, err := Load(sampleMap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			id := m.IDOf(r, c)
			gotR, gotC := m.Coords(id)
			if gotR != r || gotC != c {
				t.Fatalf("IDOf/Coords round trip failed at (%d,%d): got (%d,%d)", r, c, gotR, gotC)
			}
		}
	}
}

func TestOutOfRangeIsRejected(t *testing.T) {
	m, err := Load(sampleMap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IDOf(-1, 0) != -1 || m.IDOf(0, -1) != -1 || m.IDOf(m.Rows(), 0) != -1 {
		t.Fatal("want -1 for out-of-range coordinates")
	}
	if m.IsTraversable(-1) || m.IsTraversable(len(m.cells)) {
		t.Fatal("out-of-range id must not be traversable")
	}
}
