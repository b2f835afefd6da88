package client

import (
	"testing"

	"github.com/yourusername/nuggets/internal/protocol"
)

func TestApplyOK(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindOK, Letter: 'C'})
	if s.Letter != 'C' {
		t.Fatalf("want letter C, got %q", s.Letter)
	}
}

func TestApplyGrid(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindGrid, Rows: 21, Cols: 79})
	if s.Rows != 21 || s.Cols != 79 {
		t.Fatalf("want 21x79, got %dx%d", s.Rows, s.Cols)
	}
}

func TestApplyGold(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindGold, Gold: protocol.Gold{Recent: 4, Purse: 10, Remaining: 200}})
	if s.Gold.Recent != 4 || s.Gold.Purse != 10 || s.Gold.Remaining != 200 {
		t.Fatalf("unexpected gold: %+v", s.Gold)
	}
}

func TestApplyDisplayReplacesPreviousFrame(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindDisplay, Display: "old"})
	s.Apply(Event{Kind: protocol.KindDisplay, Display: "new"})
	if s.Display != "new" {
		t.Fatalf("want new, got %q", s.Display)
	}
}

func TestApplyErrorLeavesQuitUnset(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindError, Text: "Invalid keystroke."})
	if s.Err != "Invalid keystroke." {
		t.Fatalf("want error text preserved, got %q", s.Err)
	}
	if s.Quit {
		t.Fatalf("ERROR must not set Quit")
	}
}

func TestApplyQuitSetsQuitAndText(t *testing.T) {
	var s State
	s.Apply(Event{Kind: protocol.KindQuit, Text: "Thanks for playing!"})
	if !s.Quit {
		t.Fatalf("want Quit true")
	}
	if s.QuitText != "Thanks for playing!" {
		t.Fatalf("want quit text preserved, got %q", s.QuitText)
	}
}
