package server

import (
	"net"
	"strings"
	"testing"
)

func testAddr(port int) Endpoint {
	return EndpointOf(&net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: port})
}

func TestJoinAssignsLettersInOrder(t *testing.T) {
	r := NewRegistry()
	alice, err := r.Join("Alice", testAddr(1), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alice.ID != 'A' {
		t.Fatalf("want first join to get letter A, got %c", alice.ID)
	}
	bob, err := r.Join("Bob", testAddr(2), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bob.ID != 'B' {
		t.Fatalf("want second join to get letter B, got %c", bob.ID)
	}
}

func TestJoinRejectsEmptyName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Join("   ", testAddr(1), 0); err != ErrBadName {
		t.Fatalf("want ErrBadName, got %v", err)
	}
}

func TestJoinSanitizesControlCharacters(t *testing.T) {
	r := NewRegistry()
	p, err := r.Join("Al\x07ice", testAddr(1), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.ContainsRune(p.Name, '\x07') {
		t.Fatalf("want control character replaced, got %q", p.Name)
	}
}

func TestJoinRejectsDuplicateAddress(t *testing.T) {
	r := NewRegistry()
	a := testAddr(1)
	if _, err := r.Join("Alice", a, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Join("Alice2", a, 1); err != ErrAddressTaken {
		t.Fatalf("want ErrAddressTaken, got %v", err)
	}
}

func TestJoinRejectsOnceGameIsFull(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < maxLetters; i++ {
		if _, err := r.Join("P", testAddr(i), i); err != nil {
			t.Fatalf("unexpected error admitting player %d: %v", i, err)
		}
	}
	if _, err := r.Join("One More", testAddr(1000), 0); err != ErrGameFull {
		t.Fatalf("want ErrGameFull on the 27th join, got %v", err)
	}
}

func TestQuitMarksLeftGameAndReturnsPurse(t *testing.T) {
	r := NewRegistry()
	a := testAddr(1)
	p, _ := r.Join("Alice", a, 3)
	p.Purse = 42

	cell, purse, ok := r.Quit(a)
	if !ok {
		t.Fatal("want Quit to succeed for a live player")
	}
	if cell != 3 || purse != 42 {
		t.Fatalf("want (3, 42), got (%d, %d)", cell, purse)
	}
	if p.Cell != LeftGame {
		t.Fatalf("want cell set to LeftGame, got %d", p.Cell)
	}
	if p.Purse != 0 {
		t.Fatalf("want purse zeroed after quitting, got %d", p.Purse)
	}
}

func TestQuitTwiceReportsNotOK(t *testing.T) {
	r := NewRegistry()
	a := testAddr(1)
	r.Join("Alice", a, 0)
	r.Quit(a)
	if _, _, ok := r.Quit(a); ok {
		t.Fatal("want second quit to report ok=false")
	}
}

func TestLocationsExcludesDepartedPlayers(t *testing.T) {
	r := NewRegistry()
	a, b := testAddr(1), testAddr(2)
	r.Join("Alice", a, 10)
	r.Join("Bob", b, 20)
	r.Quit(a)

	locs := r.Locations()
	if _, ok := locs[10]; ok {
		t.Fatal("want departed player's cell excluded from locations")
	}
	if locs[20] != 'B' {
		t.Fatalf("want Bob's cell mapped to 'B', got %q", locs[20])
	}
}

func TestSummaryListsPlayersInJoinOrder(t *testing.T) {
	r := NewRegistry()
	alice, _ := r.Join("Alice", testAddr(1), 0)
	alice.Purse = 7
	bob, _ := r.Join("Bob", testAddr(2), 1)
	bob.Purse = 123

	summary := r.Summary()
	lines := strings.Split(strings.TrimRight(summary, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 summary lines, got %d: %q", len(lines), summary)
	}
	if !strings.HasPrefix(lines[0], "A 7") || !strings.HasSuffix(lines[0], "Alice") {
		t.Fatalf("unexpected first summary line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "B 123") || !strings.HasSuffix(lines[1], "Bob") {
		t.Fatalf("unexpected second summary line: %q", lines[1])
	}
}

func TestByLetterAndByAddressLookup(t *testing.T) {
	r := NewRegistry()
	a := testAddr(1)
	p, _ := r.Join("Alice", a, 0)

	byLetter, ok := r.ByLetter('A')
	if !ok || byLetter != p {
		t.Fatal("want ByLetter('A') to return the joined player")
	}
	byAddr, ok := r.ByAddress(a)
	if !ok || byAddr != p {
		t.Fatal("want ByAddress to return the joined player")
	}
	if _, ok := r.ByLetter('Z'); ok {
		t.Fatal("want ByLetter to report false for an unassigned letter")
	}
}
