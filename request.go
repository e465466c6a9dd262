package arply

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/mdlayher/arp"
	"github.com/mdlayher/ethernet"
)

// errInvalidARPPacket is returned when an ethernet frame does not indicate
// that an ARP packet is contained in its payload.
var errInvalidARPPacket = errors.New("invalid ARP packet")

// A Request is a decoded ARP request.  Its fields contain information
// regarding the request's operation, sender information, and target
// information.
type Request struct {
	// Operation specifies the ARP operation being performed, such as request
	// or reply.
	Operation Operation

	// Source specifies the Ethernet source address of the frame carrying
	// this Request.
	Source net.HardwareAddr

	// SenderHardwareAddr specifies the hardware address of the sender of
	// this Request.
	SenderHardwareAddr net.HardwareAddr

	// SenderIP specifies the IPv4 address of the sender of this Request.
	SenderIP netip.Addr

	// TargetHardwareAddr specifies the hardware address of the target of
	// this Request.
	TargetHardwareAddr net.HardwareAddr

	// TargetIP specifies the IPv4 address of the target of this Request.
	TargetIP netip.Addr
}

// String returns the Request in tcpdump-like form.
func (r *Request) String() string {
	return fmt.Sprintf("who-has %s?  tell %s (%s)", r.TargetIP, r.SenderIP, r.SenderHardwareAddr)
}

// parseRequest unmarshals a raw ethernet frame and an ARP packet into a
// Request.  The returned Request does not alias buf.
func parseRequest(buf []byte) (*Request, error) {
	f := new(ethernet.Frame)
	if err := f.UnmarshalBinary(buf); err != nil {
		return nil, err
	}

	if f.EtherType != ethernet.EtherTypeARP {
		return nil, errInvalidARPPacket
	}

	p := new(arp.Packet)
	if err := p.UnmarshalBinary(f.Payload); err != nil {
		return nil, err
	}

	return &Request{
		Operation:          Operation(p.Operation),
		Source:             f.Source,
		SenderHardwareAddr: p.SenderHardwareAddr,
		SenderIP:           p.SenderIP,
		TargetHardwareAddr: p.TargetHardwareAddr,
		TargetIP:           p.TargetIP,
	}, nil
}
