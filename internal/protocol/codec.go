package protocol

import (
	"fmt"
	"strings"
)

// ErrUnknownFrame is returned by Parse when the leading token of a
// datagram does not match any recognised inbound frame.
type ErrUnknownFrame struct {
	Raw string
}

func (e *ErrUnknownFrame) Error() string {
	return fmt.Sprintf("protocol: unrecognised frame %q", e.Raw)
}

// ErrMalformedFrame is returned by Parse when the leading token is
// recognised but the frame body is invalid (e.g. KEY with no character,
// or more than one character).
type ErrMalformedFrame struct {
	Raw string
}

func (e *ErrMalformedFrame) Error() string {
	return fmt.Sprintf("protocol: malformed frame %q", e.Raw)
}

// Parse decodes one inbound datagram's text into a frame. It is strict on
// the leading token and permissive on trailing whitespace; leading
// whitespace is not accepted.
func Parse(raw string) (Inbound, error) {
	trimmed := strings.TrimRight(raw, "\r\n")

	switch {
	case trimmed == string(KindSpectate) || strings.HasPrefix(trimmed, string(KindSpectate)+" "):
		return Inbound{Kind: KindSpectate}, nil

	case strings.HasPrefix(trimmed, string(KindPlay)+" "):
		name := strings.TrimSpace(trimmed[len(KindPlay)+1:])
		return Inbound{Kind: KindPlay, Name: name}, nil

	case strings.HasPrefix(trimmed, string(KindKey)+" "):
		body := strings.TrimSpace(trimmed[len(KindKey)+1:])
		if len(body) != 1 {
			return Inbound{}, &ErrMalformedFrame{Raw: raw}
		}
		return Inbound{Kind: KindKey, Key: body[0]}, nil

	default:
		return Inbound{}, &ErrUnknownFrame{Raw: raw}
	}
}

// FormatOK formats the OK <letter> frame sent to a newly admitted player.
func FormatOK(letter byte) string {
	return fmt.Sprintf("OK %c", letter)
}

// FormatGrid formats the GRID <rows> <cols> frame.
func FormatGrid(rows, cols int) string {
	return fmt.Sprintf("GRID %d %d", rows, cols)
}

// FormatGold formats a GOLD <recent> <purse> <remaining> frame.
func FormatGold(g Gold) string {
	return fmt.Sprintf("GOLD %d %d %d", g.Recent, g.Purse, g.Remaining)
}

// FormatDisplay formats a DISPLAY\n<framebuffer> frame. framebuffer must
// already be newline-joined rows with no trailing newline.
func FormatDisplay(framebuffer string) string {
	return "DISPLAY\n" + framebuffer
}

// FormatError formats an ERROR <text> frame.
func FormatError(text string) string {
	return "ERROR " + text
}

// FormatQuit formats a QUIT <text> frame.
func FormatQuit(text string) string {
	return "QUIT " + text
}
