package arply

import (
	"fmt"
	"net"
	"net/netip"
)

// Resolve looks up the network interface with the specified name and
// creates an Identity from the interface's hardware address and the
// dotted-decimal IPv4 address ip.
//
// Resolve only queries the kernel for interface information; it does not
// open any sockets.
func Resolve(name, ip string) (*net.Interface, *Identity, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrInterfaceNotFound, name, err)
	}

	id, err := newIdentity(ifi, ip)
	if err != nil {
		return nil, nil, err
	}

	return ifi, id, nil
}

// newIdentity is the testable core of Resolve.
func newIdentity(ifi *net.Interface, ip string) (*Identity, error) {
	if ifi.Index <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, ifi.Name)
	}
	if len(ifi.HardwareAddr) != 6 {
		return nil, fmt.Errorf("%w: %s", ErrHardwareAddressUnavailable, ifi.Name)
	}

	addr, err := parseIPv4(ip)
	if err != nil {
		return nil, err
	}

	return NewIdentity(ifi.HardwareAddr, addr)
}

// parseIPv4 parses s as a dotted-decimal IPv4 address.  IPv6 and
// IPv4-mapped IPv6 notations are rejected.
func parseIPv4(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	return addr, nil
}
