package server

import "testing"

// A simple open room, no obstructions inside.
const openRoom = "" +
	"+-----+\n" +
	"|.....|\n" +
	"|.....|\n" +
	"|.....|\n" +
	"+-----+\n"

func TestVisibleFromIncludesSelf(t *testing.T) {
	m, err := Load(openRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viewer := m.IDOf(2, 3)
	vis := VisibleFrom(m, viewer)
	if !vis.Has(viewer) {
		t.Fatal("viewer cell must always be visible")
	}
}

func TestVisibleFromSeesAcrossOpenRoom(t *testing.T) {
	m, err := Load(openRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viewer := m.IDOf(1, 1)
	target := m.IDOf(3, 5)
	vis := VisibleFrom(m, viewer)
	if !vis.Has(target) {
		t.Fatal("want diagonal cell visible across an open room")
	}
}

func TestStraightLineBlockedByWall(t *testing.T) {
	// A room split by an interior wall running down column 4.
	text := "" +
		"+-------+\n" +
		"|...|...|\n" +
		"|...|...|\n" +
		"+-------+\n"
	m, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viewer := m.IDOf(1, 1)
	target := m.IDOf(1, 5)
	if lineOfSight(m, 1, 1, 1, 5) {
		t.Fatal("want sight line blocked by interior wall")
	}
	vis := VisibleFrom(m, viewer)
	if vis.Has(target) {
		t.Fatal("want target not visible through wall")
	}
}

func TestDiagonalSeamAllowsSightThroughSingleFileGap(t *testing.T) {
	// Diagonal step from (0,0) to (1,1): the flanking cells are (0,1) and
	// (1,0). One of them is room floor, so the seam is visible.
	text := "" +
		"..\n" +
		"|.\n"
	m, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !lineOfSight(m, 0, 0, 1, 1) {
		t.Fatal("want diagonal seam visible when one flanking cell is room floor")
	}
}

func TestDiagonalSeamBlockedWhenBothFlankingCellsAreWalls(t *testing.T) {
	// Diagonal step from (0,0) to (1,1): flanking cells (0,1) and (1,0)
	// are both walls, so the seam is blocked.
	text := "" +
		".|\n" +
		"|.\n"
	m, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lineOfSight(m, 0, 0, 1, 1) {
		t.Fatal("want diagonal blocked when both flanking cells are walls")
	}
}

func TestPassageRestrictsToEightNeighboursWithNoMouth(t *testing.T) {
	text := "" +
		"     \n" +
		"  #  \n" +
		"     \n"
	m, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viewer := m.IDOf(1, 2)
	vis := VisibleFrom(m, viewer)
	// Only the viewer cell itself is traversable nearby (rock all around);
	// the 8-neighbour restriction still includes the rock neighbours as
	// "visible" cells (they're drawn as terrain), just not anything beyond.
	if vis.Size() != 9 {
		t.Fatalf("want exactly the 3x3 block (9 cells), got %d", vis.Size())
	}
}

func TestPassageWithFloorMouthUsesLongRangeScan(t *testing.T) {
	text := "" +
		"+----+\n" +
		"|....#\n" +
		"+----+\n"
	m, err := Load(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	passageCell := m.IDOf(1, 5)
	if m.CellAt(passageCell) != Passage {
		t.Fatalf("expected passage at test cell")
	}
	vis := VisibleFrom(m, passageCell)
	floorCell := m.IDOf(1, 1)
	if !vis.Has(floorCell) {
		t.Fatal("want long-range scan through a passage mouth to see into the room")
	}
}

func TestUpdateViewMergesIntoRemembered(t *testing.T) {
	m, err := Load(openRoom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	viewerA := m.IDOf(1, 1)
	visible, remembered := UpdateView(m, nil, viewerA)
	if remembered.Size() != visible.Size() {
		t.Fatal("first call: remembered must equal visible")
	}

	viewerB := m.IDOf(3, 5)
	visible2, remembered2 := UpdateView(m, remembered, viewerB)
	if remembered2.Size() < remembered.Size() {
		t.Fatal("remembered set must never shrink")
	}
	visible2.Each(func(id int) {
		if !remembered2.Has(id) {
			t.Fatalf("remembered must be a superset of the latest visible set: missing %d", id)
		}
	})
}
