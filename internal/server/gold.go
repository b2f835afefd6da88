package server

import (
	"errors"
	"math/rand"
)

// ErrNoRoomForGold is returned by Init when the map has no room-floor cells
// to place any gold on.
var ErrNoRoomForGold = errors.New("gold: map has no room floor to place gold on")

// GoldPool tracks the gold remaining on the grid, keyed by cell id, and the
// running total not yet collected by any player.
type GoldPool struct {
	piles     map[int]int
	remaining int
}

// Init scatters total gold across a random number of piles, between
// minPiles and maxPiles inclusive, over the room-floor cells of m. The
// distribution mirrors the original engine: piles are filled from last to
// first with a random cut of whatever remains, and the first pile absorbs
// the leftover, so no pile is ever empty.
func Init(m *Map, rng *rand.Rand, total, minPiles, maxPiles int) (*GoldPool, error) {
	numPiles := minPiles + rng.Intn(maxPiles-minPiles+1)

	locations, err := randomRoomLocations(m, rng, numPiles)
	if err != nil {
		return nil, err
	}

	amounts := distributeGold(rng, total, numPiles)

	piles := make(map[int]int, numPiles)
	for i, loc := range locations {
		piles[loc] += amounts[i]
	}

	return &GoldPool{piles: piles, remaining: total}, nil
}

// distributeGold splits total into numPiles positive amounts summing to
// total. Grounded on generateGoldDistribution in the original engine: walk
// the piles from last to first, each taking a random cut of whatever gold
// remains (at least 1), and let pile 0 absorb what's left over.
func distributeGold(rng *rand.Rand, total, numPiles int) []int {
	arr := make([]int, numPiles)
	remaining := total - numPiles
	for i := numPiles - 1; i > 0; i-- {
		gold := rng.Intn(remaining) + 1
		arr[i] = gold
		remaining -= gold - 1
	}
	arr[0] = remaining + 1
	return arr
}

// randomRoomLocations picks numPiles room-floor cell ids at random,
// retrying on collisions so the ids are distinct while unused room-floor
// cells remain; once every room-floor cell has been chosen, further ids
// may repeat one already chosen.
func randomRoomLocations(m *Map, rng *rand.Rand, numPiles int) ([]int, error) {
	total := m.Rows() * m.Cols()
	if total == 0 {
		return nil, ErrNoRoomForGold
	}

	roomCells := make([]int, 0, total)
	for id := 0; id < total; id++ {
		if m.IsRoom(id) {
			roomCells = append(roomCells, id)
		}
	}
	if len(roomCells) == 0 {
		return nil, ErrNoRoomForGold
	}

	chosen := make(map[int]bool, numPiles)
	locations := make([]int, 0, numPiles)
	for len(locations) < numPiles {
		id := roomCells[rng.Intn(len(roomCells))]
		if chosen[id] {
			if len(chosen) == len(roomCells) {
				// fewer distinct room cells than piles: let a cell already
				// chosen take another pile rather than loop forever
				locations = append(locations, id)
				continue
			}
			continue
		}
		chosen[id] = true
		locations = append(locations, id)
	}
	return locations, nil
}

// AtCell returns the gold sitting on cell id, or 0 if there is none.
func (g *GoldPool) AtCell(id int) int {
	return g.piles[id]
}

// Collect removes and returns the gold sitting on cell id.
func (g *GoldPool) Collect(id int) int {
	amount := g.piles[id]
	if amount == 0 {
		return 0
	}
	delete(g.piles, id)
	g.remaining -= amount
	return amount
}

// Deposit places amount gold back onto cell id, used when a quitting
// player's unclaimed purse returns to the board at their last position.
// A no-op for amount <= 0.
func (g *GoldPool) Deposit(id, amount int) {
	if amount <= 0 {
		return
	}
	g.piles[id] += amount
	g.remaining += amount
}

// Remaining returns the gold not yet collected by any player.
func (g *GoldPool) Remaining() int {
	return g.remaining
}

// Done reports whether every pile has been collected.
func (g *GoldPool) Done() bool {
	return g.remaining == 0
}

// Each calls f once per remaining pile, with its cell id and amount.
func (g *GoldPool) Each(f func(id, amount int)) {
	for id, amount := range g.piles {
		f(id, amount)
	}
}
