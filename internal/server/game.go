package server

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/nuggets/internal/protocol"
)

// Phase is the game's lifecycle state.
type Phase int

const (
	Initialising Phase = iota
	Running
	Ending
	Done
)

// Outbound is one frame the engine wants sent to one recipient. Display,
// when true, is rendered lazily per-recipient by the caller since every
// player sees a different partial view.
type Outbound struct {
	To      Endpoint
	Text    string // pre-rendered OK/GRID/GOLD/ERROR/QUIT frame, or "" if Display is set
	Display bool
	Viewer  Endpoint // who the DISPLAY frame should be rendered for, when Display is true
}

// Game is the process-wide authoritative engine: map, gold pool, player
// registry, observer, and lifecycle. It is driven by a single goroutine
// (see internal/server/datagram.go) and holds no locks of its own.
type Game struct {
	Map     *Map
	Gold    *GoldPool
	Players *Registry
	rng     *rand.Rand

	observer    Endpoint
	hasObserver bool

	phase Phase
}

// NewGame constructs a game ready to accept players: it loads the gold
// pool onto m using rng and starts in phase Running once at least one
// spawn is possible.
func NewGame(m *Map, rng *rand.Rand) (*Game, error) {
	pool, err := Init(m, rng, protocol.GoldTotal, protocol.MinPiles, protocol.MaxPiles)
	if err != nil {
		return nil, fmt.Errorf("starting game: %w", err)
	}
	return &Game{
		Map:     m,
		Gold:    pool,
		Players: NewRegistry(),
		rng:     rng,
		phase:   Running,
	}, nil
}

// Phase reports the current lifecycle state.
func (g *Game) Phase() Phase { return g.phase }

// Join admits addr as a player named name. On success it returns the
// frames to send: OK, GRID, GOLD, DISPLAY to the joiner, then GOLD and
// DISPLAY to every other live player and the observer, in that order. On
// rejection it returns a single QUIT frame to the rejected address.
func (g *Game) Join(name string, addr Endpoint) []Outbound {
	if sanitizeName(name) == "" {
		return []Outbound{{To: addr, Text: protocol.FormatQuit("Sorry - you must provide player's name.")}}
	}

	spawn, ok := g.randomFreeCell()
	if !ok {
		return []Outbound{{To: addr, Text: protocol.FormatQuit("Game is full: no more players can join.")}}
	}

	p, err := g.Players.Join(name, addr, spawn)
	if err != nil {
		switch err {
		case ErrBadName:
			return []Outbound{{To: addr, Text: protocol.FormatQuit("Sorry - you must provide player's name.")}}
		case ErrGameFull, ErrAddressTaken:
			return []Outbound{{To: addr, Text: protocol.FormatQuit("Game is full: no more players can join.")}}
		}
		return []Outbound{{To: addr, Text: protocol.FormatQuit(err.Error())}}
	}

	p.RecentGold = g.Gold.Collect(p.Cell)
	p.Purse += p.RecentGold
	_, p.Remembered = UpdateView(g.Map, nil, p.Cell)

	out := []Outbound{
		{To: addr, Text: protocol.FormatOK(p.ID)},
		{To: addr, Text: protocol.FormatGrid(g.Map.Rows(), g.Map.Cols())},
		{To: addr, Text: protocol.FormatGold(protocol.Gold{Recent: p.RecentGold, Purse: p.Purse, Remaining: g.Gold.Remaining()})},
		{To: addr, Display: true, Viewer: addr},
	}
	out = append(out, g.broadcastGoldAndDisplay(Endpoint{}, addr)...)
	return out
}

// Spectate installs addr as the sole observer, evicting any previous one.
func (g *Game) Spectate(addr Endpoint) []Outbound {
	var out []Outbound
	if g.hasObserver && g.observer != addr {
		out = append(out, Outbound{To: g.observer, Text: protocol.FormatQuit("You have been replaced by a new spectator.")})
	}
	g.observer = addr
	g.hasObserver = true

	out = append(out,
		Outbound{To: addr, Text: protocol.FormatGrid(g.Map.Rows(), g.Map.Cols())},
		Outbound{To: addr, Text: protocol.FormatGold(protocol.Gold{Remaining: g.Gold.Remaining()})},
		Outbound{To: addr, Display: true, Viewer: addr},
	)
	return out
}

// KeyPress handles one keystroke from addr and returns the frames to send
// plus an error identifying why no (or a rejecting) reply was produced:
// ErrUnknownAddress when addr owns no live player, ErrInvalidKeystroke when
// the character is unrecognised or the single step it named was rejected
// (accompanied by a single ERROR frame to addr), and nil for everything
// else, including a halted uppercase run with no effect. Once the gold
// pool is exhausted, the final broadcast is followed by a QUIT GAME OVER
// frame to every live player and the observer, and the game moves to
// phase Done.
func (g *Game) KeyPress(addr Endpoint, key byte) ([]Outbound, error) {
	p, ok := g.Players.ByAddress(addr)
	if !ok || p.Cell == LeftGame {
		return nil, ErrUnknownAddress
	}

	if key == 'Q' {
		cell, purse, _ := g.Players.Quit(addr)
		g.Gold.Deposit(cell, purse)
		out := []Outbound{{To: addr, Text: protocol.FormatQuit("Thanks for playing!")}}
		out = append(out, g.broadcastGoldAndDisplay(Endpoint{}, Endpoint{})...)
		return g.maybeEndGame(out), nil
	}

	dr, dc, known := compassDelta(key)
	if !known {
		return []Outbound{{To: addr, Text: protocol.FormatError("Invalid keystroke.")}}, ErrInvalidKeystroke
	}

	p.RecentGold = 0
	moved := false
	if isUppercase(key) {
		for {
			changed, shouldContinue := g.step(p, dr, dc)
			moved = moved || changed
			if !shouldContinue {
				break
			}
		}
	} else {
		changed, _ := g.step(p, dr, dc)
		if !changed {
			return []Outbound{{To: addr, Text: protocol.FormatError("Invalid keystroke.")}}, ErrInvalidKeystroke
		}
		moved = true
	}
	if !moved {
		return nil, nil
	}

	out := g.broadcastGoldAndDisplay(addr, Endpoint{})
	return g.maybeEndGame(out), nil
}

// step attempts one compass move for p. changed reports whether the
// board actually changed (a move or a swap); shouldContinue reports
// whether an uppercase run may attempt another step: false if the target
// was off-grid/non-traversable (step 1 rejected) or a swap just occurred,
// since a swap always terminates the run.
func (g *Game) step(p *Player, dr, dc int) (changed, shouldContinue bool) {
	r, c := g.Map.Coords(p.Cell)
	nr, nc := r+dr, c+dc
	target := g.Map.IDOf(nr, nc)
	if target < 0 || !g.Map.IsTraversable(target) {
		return false, false
	}

	if other, occupied := g.Players.Occupied(target); occupied {
		p.Cell, other.Cell = other.Cell, p.Cell
		p.RecentGold = 0
		_, p.Remembered = UpdateView(g.Map, p.Remembered, p.Cell)
		_, other.Remembered = UpdateView(g.Map, other.Remembered, other.Cell)
		return true, false
	}

	p.Cell = target
	picked := g.Gold.Collect(target)
	p.Purse += picked
	p.RecentGold += picked
	_, p.Remembered = UpdateView(g.Map, p.Remembered, p.Cell)
	return true, true
}

// maybeEndGame appends the GAME OVER sequence once the gold pool is
// exhausted and transitions the game to phase Done.
func (g *Game) maybeEndGame(out []Outbound) []Outbound {
	if g.Gold.Remaining() > 0 {
		return out
	}
	return g.endGame(out)
}

// Shutdown runs the same end-of-game broadcast path as gold exhaustion,
// triggered instead by the operator closing standard input. It always
// ends the game, regardless of remaining gold.
func (g *Game) Shutdown() []Outbound {
	return g.endGame(nil)
}

// endGame appends a QUIT GAME OVER frame to every live player and the
// observer and transitions the game to phase Done.
func (g *Game) endGame(out []Outbound) []Outbound {
	g.phase = Ending
	summary := g.Players.Summary()
	text := protocol.FormatQuit("GAME OVER:\n" + summary)
	g.Players.Each(func(p *Player) {
		if p.Cell != LeftGame {
			out = append(out, Outbound{To: p.Address, Text: text})
		}
	})
	if g.hasObserver {
		out = append(out, Outbound{To: g.observer, Text: text})
	}
	g.phase = Done
	return out
}

// broadcastGoldAndDisplay builds the GOLD + DISPLAY pair sent to every
// live player and the observer (excluding skip, if it names a live
// player) after any accepted movement, quit, or join. recentGoldTo names
// the address (if any) whose GOLD frame should carry its just-collected
// amount; every other recipient sees recent=0. skip is used by Join to
// exclude the joiner, who already received their own OK/GRID/GOLD/DISPLAY
// frames directly.
func (g *Game) broadcastGoldAndDisplay(recentGoldTo, skip Endpoint) []Outbound {
	var out []Outbound
	g.Players.Each(func(p *Player) {
		if p.Cell == LeftGame || p.Address == skip {
			return
		}
		recent := 0
		if p.Address == recentGoldTo {
			recent = p.RecentGold
		}
		out = append(out,
			Outbound{To: p.Address, Text: protocol.FormatGold(protocol.Gold{Recent: recent, Purse: p.Purse, Remaining: g.Gold.Remaining()})},
			Outbound{To: p.Address, Display: true, Viewer: p.Address},
		)
	})
	if g.hasObserver && g.observer != skip {
		out = append(out,
			Outbound{To: g.observer, Text: protocol.FormatGold(protocol.Gold{Remaining: g.Gold.Remaining()})},
			Outbound{To: g.observer, Display: true, Viewer: g.observer},
		)
	}
	return out
}

// Render produces the framebuffer DISPLAY text should carry for viewer.
// The observer sees the whole map; a player sees their remembered set
// with the live occupants and gold of the currently-visible subset
// layered on top.
func (g *Game) Render(viewer Endpoint) string {
	if g.hasObserver && viewer == g.observer {
		return renderFramebuffer(g.Map, nil, nil, g.Players.Locations(), g.Gold, -1, true)
	}
	p, ok := g.Players.ByAddress(viewer)
	if !ok {
		return renderFramebuffer(g.Map, nil, nil, g.Players.Locations(), g.Gold, -1, true)
	}
	visible, remembered := UpdateView(g.Map, p.Remembered, p.Cell)
	p.Remembered = remembered
	return renderFramebuffer(g.Map, remembered, visible, g.Players.Locations(), g.Gold, p.Cell, false)
}

func (g *Game) randomFreeCell() (int, bool) {
	total := g.Map.Rows() * g.Map.Cols()
	candidates := make([]int, 0, total)
	for id := 0; id < total; id++ {
		if !g.Map.IsTraversable(id) {
			continue
		}
		if _, occupied := g.Players.Occupied(id); occupied {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

func isUppercase(key byte) bool {
	return key >= 'A' && key <= 'Z'
}

// compassDelta maps a movement keystroke (either case) to a (row, col)
// step. Grounded on the original engine's vi-style key bindings: h/j/k/l
// for the cardinal directions and y/u/b/n for the diagonals.
func compassDelta(key byte) (dr, dc int, ok bool) {
	lower := key
	if isUppercase(key) {
		lower = key - 'A' + 'a'
	}
	switch lower {
	case 'h':
		return 0, -1, true
	case 'l':
		return 0, 1, true
	case 'k':
		return -1, 0, true
	case 'j':
		return 1, 0, true
	case 'y':
		return -1, -1, true
	case 'u':
		return -1, 1, true
	case 'b':
		return 1, -1, true
	case 'n':
		return 1, 1, true
	default:
		return 0, 0, false
	}
}
