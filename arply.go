// Package arply implements a minimal ARP responder, which answers ARP
// requests for a single IPv4 address on behalf of a network interface.
package arply

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

var (
	// ErrInterfaceNotFound is returned when a network interface cannot be
	// found, or reports an invalid interface index.
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrHardwareAddressUnavailable is returned when a network interface has
	// no Ethernet hardware address.
	ErrHardwareAddressUnavailable = errors.New("hardware address unavailable")

	// ErrInvalidAddress is returned when an address is not a dotted-decimal
	// IPv4 address.
	ErrInvalidAddress = errors.New("invalid IPv4 address")

	// ErrBindFailed is returned when a raw socket cannot be opened and bound
	// to a network interface.
	ErrBindFailed = errors.New("bind failed")

	// ErrFilterAttachFailed is returned when the ARP request filter cannot be
	// attached to a raw socket.
	ErrFilterAttachFailed = errors.New("filter attach failed")

	// ErrWaitFailed is returned by Serve when waiting for incoming frames
	// fails for a reason other than shutdown.
	ErrWaitFailed = errors.New("wait failed")

	// ErrSendFailed is returned by Serve when a reply cannot be transmitted
	// and the error is not transient.
	ErrSendFailed = errors.New("send failed")
)

// An Identity is the hardware and IPv4 address pair that a Responder claims
// to own.  An Identity cannot be modified once created.
type Identity struct {
	hw [6]byte
	ip [4]byte
}

// NewIdentity creates an Identity from an Ethernet hardware address and an
// IPv4 address.
func NewIdentity(hw net.HardwareAddr, ip netip.Addr) (*Identity, error) {
	if len(hw) != 6 {
		return nil, ErrHardwareAddressUnavailable
	}
	if !ip.Is4() {
		return nil, ErrInvalidAddress
	}

	id := &Identity{ip: ip.As4()}
	copy(id.hw[:], hw)
	return id, nil
}

// HardwareAddr returns a copy of the Identity's hardware address.
func (id *Identity) HardwareAddr() net.HardwareAddr {
	hw := make(net.HardwareAddr, len(id.hw))
	copy(hw, id.hw[:])
	return hw
}

// IP returns the Identity's IPv4 address.
func (id *Identity) IP() netip.Addr {
	return netip.AddrFrom4(id.ip)
}

// String returns the Identity in the form "src HWADDR ip IP".
func (id *Identity) String() string {
	return fmt.Sprintf("src %s ip %s", id.HardwareAddr(), id.IP())
}
