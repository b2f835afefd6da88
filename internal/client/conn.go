package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/yourusername/nuggets/internal/protocol"
)

// Event is one parsed server-to-client frame, handed to the renderer over
// a channel so the read pump never blocks on UI work.
type Event struct {
	Kind    protocol.Kind
	Letter  byte
	Rows    int
	Cols    int
	Gold    protocol.Gold
	Display string
	Text    string // ERROR or QUIT body
}

// Conn owns the client's UDP socket: one goroutine reads datagrams and
// decodes them into Events on a channel; SendKey and the join helpers
// write synchronously.
type Conn struct {
	sock *net.UDPConn

	Events chan Event
	done   chan struct{}
}

// Dial opens a UDP socket to host:port. It does not block waiting for a
// reply — PLAY/SPECTATE are separate calls.
func Dial(host string, port int) (*Conn, error) {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolving %s:%d: %w", host, port, err)
	}
	sock, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s:%d: %w", host, port, err)
	}
	c := &Conn{
		sock:   sock,
		Events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
	go c.readPump()
	return c, nil
}

// Join sends a PLAY request with the given player name.
func (c *Conn) Join(name string) error {
	_, err := c.sock.Write([]byte("PLAY " + name))
	return err
}

// Spectate sends a SPECTATE request.
func (c *Conn) Spectate() error {
	_, err := c.sock.Write([]byte("SPECTATE"))
	return err
}

// SendKey sends a single keystroke.
func (c *Conn) SendKey(key byte) error {
	_, err := c.sock.Write([]byte("KEY " + string(key)))
	return err
}

// Close releases the socket and stops the read pump.
func (c *Conn) Close() error {
	close(c.done)
	return c.sock.Close()
}

func (c *Conn) readPump() {
	buf := make([]byte, protocol.MessageMaxBytes)
	for {
		n, err := c.sock.Read(buf)
		if err != nil {
			close(c.Events)
			return
		}
		ev, ok := decodeEvent(buf[:n])
		if !ok {
			continue
		}
		select {
		case c.Events <- ev:
		case <-c.done:
			return
		}
	}
}

// decodeEvent parses one outbound server frame into an Event. Unlike
// protocol.Parse (inbound-only), this handles the server->client frames,
// since the client and server share only the wire constants, not a
// bidirectional decoder.
func decodeEvent(raw []byte) (Event, bool) {
	text := string(raw)
	switch {
	case strings.HasPrefix(text, "OK "):
		letter := strings.TrimSpace(text[3:])
		if letter == "" {
			return Event{}, false
		}
		return Event{Kind: protocol.KindOK, Letter: letter[0]}, true

	case strings.HasPrefix(text, "GRID "):
		var rows, cols int
		if _, err := fmt.Sscanf(text, "GRID %d %d", &rows, &cols); err != nil {
			return Event{}, false
		}
		return Event{Kind: protocol.KindGrid, Rows: rows, Cols: cols}, true

	case strings.HasPrefix(text, "GOLD "):
		var g protocol.Gold
		if _, err := fmt.Sscanf(text, "GOLD %d %d %d", &g.Recent, &g.Purse, &g.Remaining); err != nil {
			return Event{}, false
		}
		return Event{Kind: protocol.KindGold, Gold: g}, true

	case strings.HasPrefix(text, "DISPLAY\n"):
		return Event{Kind: protocol.KindDisplay, Display: text[len("DISPLAY\n"):]}, true

	case strings.HasPrefix(text, "ERROR"):
		return Event{Kind: protocol.KindError, Text: strings.TrimPrefix(text, "ERROR ")}, true

	case strings.HasPrefix(text, "QUIT"):
		return Event{Kind: protocol.KindQuit, Text: strings.TrimPrefix(text, "QUIT ")}, true

	default:
		return Event{}, false
	}
}
