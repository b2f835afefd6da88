package server

import (
	"net"
	"net/netip"
)

// Endpoint is a comparable stand-in for *net.UDPAddr, which cannot be used
// as a map key directly because it embeds a net.IP byte slice. Wrapping
// the address in netip.AddrPort lets the player registry be keyed by endpoint
// directly instead of a derived string or generated id.
type Endpoint struct {
	addr netip.AddrPort
}

// EndpointOf converts a UDP address into an Endpoint.
func EndpointOf(addr *net.UDPAddr) Endpoint {
	ip, _ := netip.AddrFromSlice(addr.IP)
	return Endpoint{addr: netip.AddrPortFrom(ip.Unmap(), uint16(addr.Port))}
}

// UDPAddr converts back to a *net.UDPAddr suitable for WriteToUDP.
func (e Endpoint) UDPAddr() *net.UDPAddr {
	return net.UDPAddrFromAddrPort(e.addr)
}

// String renders the endpoint as host:port, useful for logging.
func (e Endpoint) String() string {
	return e.addr.String()
}

// IsValid reports whether the endpoint wraps a real address.
func (e Endpoint) IsValid() bool {
	return e.addr.IsValid()
}
