package client

import (
	tl "github.com/JoelOtter/termloop"
)

// frameEntity is the level's sole entity: there is no local simulation to
// animate, so every tick either repaints the last DISPLAY body the server
// sent or forwards a keystroke back to it.
type frameEntity struct {
	game *TermloopGame
}

// Draw repaints the whole screen from the last DISPLAY body. It has no
// position or size of its own, since it owns the entire grid rather than a
// single game-world entity.
func (f *frameEntity) Draw(screen *tl.Screen) {
	for y, line := range f.game.currentLines() {
		for x, ch := range line {
			screen.RenderCell(x, y, &tl.Cell{Fg: tl.ColorWhite, Ch: ch})
		}
	}
}

// Tick forwards one raw keystroke to the server; movement, quitting, and
// every other rule lives server-side, so the client never predicts state.
func (f *frameEntity) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}
	if key, ok := translateKey(ev); ok {
		f.game.onKey(key)
	}
}

func (f *frameEntity) Position() (int, int) { return 0, 0 }
func (f *frameEntity) Size() (int, int)     { return 0, 0 }

// translateKey maps a termloop key event to the protocol's single-byte
// keystroke, preferring the typed rune and falling back to the named keys
// that have no rune of their own.
func translateKey(ev tl.Event) (byte, bool) {
	switch ev.Key {
	case tl.KeyCtrlC, tl.KeyEsc:
		return 'Q', true
	}
	if ev.Ch == 0 {
		return 0, false
	}
	return byte(ev.Ch), true
}

// TermloopGame drives the terminal rendering loop: it owns the connection
// to the server, the last-known state, and the termloop game/level pair.
type TermloopGame struct {
	conn  *Conn
	state *State

	game *tl.Game
}

// NewTermloopGame wires a termloop renderer to an already-dialed Conn.
func NewTermloopGame(conn *Conn, state *State) *TermloopGame {
	game := tl.NewGame()
	level := tl.NewBaseLevel(tl.Cell{
		Bg: tl.ColorBlack,
		Fg: tl.ColorWhite,
		Ch: ' ',
	})
	game.Screen().SetLevel(level)

	tg := &TermloopGame{conn: conn, state: state, game: game}
	level.AddEntity(&frameEntity{game: tg})
	return tg
}

// Run pumps server Events into state on a background goroutine while
// blocking on termloop's render loop. It returns once the connection
// closes or the server sends QUIT or ERROR.
func (tg *TermloopGame) Run() {
	go tg.pumpEvents()
	tg.game.Start()
}

// Stop ends the termloop render loop.
func (tg *TermloopGame) Stop() {
	tg.game.End()
}

func (tg *TermloopGame) pumpEvents() {
	for ev := range tg.conn.Events {
		tg.state.Apply(ev)
		if tg.state.Quit || tg.state.Err != "" {
			tg.Stop()
			return
		}
	}
	tg.Stop()
}

func (tg *TermloopGame) onKey(key byte) {
	tg.conn.SendKey(key)
}

// currentLines splits the last DISPLAY body into rows for drawing.
func (tg *TermloopGame) currentLines() []string {
	if tg.state.Display == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(tg.state.Display); i++ {
		if tg.state.Display[i] == '\n' {
			lines = append(lines, tg.state.Display[start:i])
			start = i + 1
		}
	}
	if start < len(tg.state.Display) {
		lines = append(lines, tg.state.Display[start:])
	}
	return lines
}
