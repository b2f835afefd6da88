package client

import "github.com/yourusername/nuggets/internal/protocol"

// State is the client's last-known view of the game, rebuilt as Events
// arrive from the server.
type State struct {
	Letter       byte
	Rows, Cols   int
	Gold         protocol.Gold
	Display      string
	Quit         bool
	QuitText     string
	Err          string
}

// Apply folds one Event into the state, in place.
func (s *State) Apply(ev Event) {
	switch ev.Kind {
	case protocol.KindOK:
		s.Letter = ev.Letter
	case protocol.KindGrid:
		s.Rows, s.Cols = ev.Rows, ev.Cols
	case protocol.KindGold:
		s.Gold = ev.Gold
	case protocol.KindDisplay:
		s.Display = ev.Display
	case protocol.KindError:
		s.Err = ev.Text
	case protocol.KindQuit:
		s.Quit = true
		s.QuitText = ev.Text
	}
}
