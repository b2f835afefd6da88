package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// LeftGame is the sentinel cell id of a player who has quit or never
// joined. Chosen as -1 rather than reusing an in-range sentinel count, per
// the explicit-absent-variant redesign over the original's magic numbers.
const LeftGame = -1

const maxLetters = 26

var (
	// ErrGameFull is returned by Join once all MaxPlayers letters have been
	// assigned; letters of departed players are not reused.
	ErrGameFull = errors.New("registry: game is full")
	// ErrBadName is returned by Join when name is empty after trimming.
	ErrBadName = errors.New("registry: name is empty")
	// ErrAddressTaken is returned by Join when address already owns a live player.
	ErrAddressTaken = errors.New("registry: address already in game")
)

// Player is one connected participant's server-side state.
type Player struct {
	ID         byte // 'A'..'Z', assigned in join order, never recycled
	Name       string
	Address    Endpoint
	Purse      int
	RecentGold int
	Cell       int // traversable cell id, or LeftGame
	Remembered *CellSet
}

// sanitizeName trims name to MaxNameLen and replaces any character that is
// neither graphical nor a blank with '_'.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	out := []rune(name)
	for i, r := range out {
		if !unicode.IsGraphic(r) && r != ' ' {
			out[i] = '_'
		}
	}
	return string(out)
}

const maxNameLen = 50

// Registry owns every live player, keyed both by network endpoint and by
// assigned letter, per the redesign favouring an equality-comparable
// endpoint key and a fixed 26-slot letter array over a textual-address
// hashtable.
type Registry struct {
	byAddress map[Endpoint]*Player
	byLetter  [maxLetters]*Player
	joinOrder []*Player
	next      int
}

// NewRegistry returns an empty player registry.
func NewRegistry() *Registry {
	return &Registry{byAddress: make(map[Endpoint]*Player)}
}

// Join admits a new player at spawnCell, which the caller must already
// have chosen as a random traversable cell free of other players (the
// game engine owns random placement and the gold pool, so it also
// collects any gold sitting on spawnCell once Join returns).
func (r *Registry) Join(name string, addr Endpoint, spawnCell int) (*Player, error) {
	clean := sanitizeName(name)
	if clean == "" {
		return nil, ErrBadName
	}
	if r.next >= maxLetters {
		return nil, ErrGameFull
	}
	if p, ok := r.byAddress[addr]; ok && p.Cell != LeftGame {
		return nil, ErrAddressTaken
	}

	p := &Player{
		ID:         byte('A' + r.next),
		Name:       clean,
		Address:    addr,
		Cell:       spawnCell,
		Remembered: NewCellSet(),
	}
	r.byAddress[addr] = p
	r.byLetter[r.next] = p
	r.joinOrder = append(r.joinOrder, p)
	r.next++
	return p, nil
}

// Quit marks addr's player as having left the game. It reports the
// player's last cell and purse so the caller can redeposit the purse into
// the gold pool there; it returns ok=false if addr owns no live player.
func (r *Registry) Quit(addr Endpoint) (cell, purse int, ok bool) {
	p, found := r.byAddress[addr]
	if !found || p.Cell == LeftGame {
		return 0, 0, false
	}
	cell, purse = p.Cell, p.Purse
	p.Cell = LeftGame
	p.Purse = 0
	return cell, purse, true
}

// ByAddress looks up the live or departed player owning addr.
func (r *Registry) ByAddress(addr Endpoint) (*Player, bool) {
	p, ok := r.byAddress[addr]
	return p, ok
}

// ByLetter looks up a player by its assigned letter.
func (r *Registry) ByLetter(letter byte) (*Player, bool) {
	idx := int(letter - 'A')
	if idx < 0 || idx >= maxLetters || r.byLetter[idx] == nil {
		return nil, false
	}
	return r.byLetter[idx], true
}

// Count returns the number of currently live (non-quit) players.
func (r *Registry) Count() int {
	n := 0
	for _, p := range r.joinOrder {
		if p.Cell != LeftGame {
			n++
		}
	}
	return n
}

// Each calls f once per player in join order, live or departed.
func (r *Registry) Each(f func(p *Player)) {
	for _, p := range r.joinOrder {
		f(p)
	}
}

// Locations returns a map from cell id to player letter, excluding any
// player whose cell is LeftGame.
func (r *Registry) Locations() map[int]byte {
	out := make(map[int]byte, len(r.joinOrder))
	for _, p := range r.joinOrder {
		if p.Cell != LeftGame {
			out[p.Cell] = p.ID
		}
	}
	return out
}

// Occupied reports whether any live player currently sits on cell.
func (r *Registry) Occupied(cell int) (*Player, bool) {
	for _, p := range r.joinOrder {
		if p.Cell == cell && p.Cell != LeftGame {
			return p, true
		}
	}
	return nil, false
}

// Summary renders one line per player in join order: letter, purse
// right-padded to 5 columns, name.
func (r *Registry) Summary() string {
	var b strings.Builder
	for _, p := range r.joinOrder {
		b.WriteByte(p.ID)
		b.WriteByte(' ')
		purse := formatRightPadded(p.Purse, 5)
		b.WriteString(purse)
		b.WriteString(p.Name)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatRightPadded(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s += " "
	}
	return s
}
