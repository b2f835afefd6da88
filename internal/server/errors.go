package server

import "errors"

// Error taxonomy per the protocol contract's propagation policy.
// BadArguments, BadMap, and SocketError are fatal at startup; ProtocolError
// and InvalidKeystroke produce an ERROR reply with no state change;
// GameFull and BadName produce a QUIT explanation; UnknownAddress
// keystrokes are logged and dropped; OutOfMemory is fatal.
var (
	ErrBadArguments     = errors.New("server: bad arguments")
	ErrSocket           = errors.New("server: socket error")
	ErrInvalidKeystroke = errors.New("server: invalid keystroke")
	ErrUnknownAddress   = errors.New("server: message from unknown address")
)
