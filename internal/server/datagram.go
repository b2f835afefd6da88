package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/yourusername/nuggets/internal/protocol"
)

// datagramIn is one received UDP packet, handed from the read goroutine to
// the single event-loop goroutine that owns all game state.
type datagramIn struct {
	from *net.UDPAddr
	data []byte
}

// Server owns the UDP socket and drives Game from a single goroutine, per
// the datagram loop contract: inbound messages are processed strictly in
// arrival order on one thread, with no locks needed on game state because
// only this goroutine ever touches it.
type Server struct {
	conn *net.UDPConn
	game *Game

	inbound  chan datagramIn
	stdinEOF chan struct{}
	done     chan struct{}
}

// NewServer binds a UDP socket on port (0 picks an ephemeral port) and
// wraps it around game.
func NewServer(game *Game, port int) (*Server, error) {
	addr := &net.UDPAddr{Port: port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSocket, err)
	}
	return &Server{
		conn:     conn,
		game:     game,
		inbound:  make(chan datagramIn, 64),
		stdinEOF: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Addr returns the bound local address, used to report the listening port.
func (s *Server) Addr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// Run drives the event loop until Close is called, standard input reaches
// EOF (the operator shutdown signal), or the game reaches phase Done, in
// which case it returns without closing the socket itself — the caller
// decides when to release it. It starts the read pump and stdin-watcher
// goroutines internally.
func (s *Server) Run() {
	go s.readPump()
	go s.watchStdin()

	for {
		select {
		case pkt := <-s.inbound:
			s.handleDatagram(pkt)
			if s.game.Phase() == Done {
				return
			}
		case <-s.stdinEOF:
			s.deliver(s.game.Shutdown())
			return
		case <-s.done:
			return
		}
	}
}

// Close stops Run and releases the socket.
func (s *Server) Close() error {
	close(s.done)
	return s.conn.Close()
}

func (s *Server) readPump() {
	buf := make([]byte, protocol.MessageMaxBytes)
	for {
		n, from, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			return // socket closed
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case s.inbound <- datagramIn{from: from, data: data}:
		case <-s.done:
			return
		}
	}
}

// watchStdin signals stdinEOF once standard input is exhausted, per the
// datagram loop's contract that EOF on stdin is an operator shutdown
// signal. The bytes themselves are discarded; only EOF matters.
func (s *Server) watchStdin() {
	buf := make([]byte, 4096)
	for {
		_, err := os.Stdin.Read(buf)
		if err != nil {
			select {
			case s.stdinEOF <- struct{}{}:
			case <-s.done:
			}
			return
		}
	}
}

func (s *Server) handleDatagram(pkt datagramIn) {
	frame, err := protocol.Parse(string(pkt.data))
	if err != nil {
		s.send(pkt.from, protocol.FormatError("malformed message"))
		return
	}

	addr := EndpointOf(pkt.from)
	var out []Outbound

	switch frame.Kind {
	case protocol.KindPlay:
		out = s.game.Join(frame.Name, addr)
	case protocol.KindSpectate:
		out = s.game.Spectate(addr)
	case protocol.KindKey:
		var keyErr error
		out, keyErr = s.game.KeyPress(addr, frame.Key)
		if errors.Is(keyErr, ErrUnknownAddress) {
			log.Printf("datagram: %v: %s", ErrUnknownAddress, addr)
			return
		}
		if errors.Is(keyErr, ErrInvalidKeystroke) {
			log.Printf("datagram: %v from %s", ErrInvalidKeystroke, addr)
		}
		if out == nil {
			return
		}
	default:
		s.send(pkt.from, protocol.FormatError("unrecognised message"))
		return
	}

	s.deliver(out)
}

// deliver renders and sends every Outbound frame the engine produced, in
// order: DISPLAY frames are rendered per-recipient since each viewer sees
// a different partial map.
func (s *Server) deliver(frames []Outbound) {
	for _, f := range frames {
		addr := f.To.UDPAddr()
		if f.Display {
			s.send(addr, protocol.FormatDisplay(s.game.Render(f.Viewer)))
			continue
		}
		s.send(addr, f.Text)
	}
}

func (s *Server) send(addr *net.UDPAddr, text string) {
	if _, err := s.conn.WriteToUDP([]byte(text), addr); err != nil {
		log.Printf("datagram: write to %s failed: %v", addr, err)
	}
}
