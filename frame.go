package arply

import (
	"encoding/binary"
	"net"
)

// An Operation is an ARP operation, such as request or reply.
type Operation uint16

// Operation constants which indicate an ARP request or reply.
const (
	OperationRequest Operation = 1
	OperationReply   Operation = 2
)

// Frame layout for an Ethernet II frame carrying an ARP packet with 6 byte
// hardware addresses and 4 byte IPv4 addresses.
//
//	 0: destination hardware address (6)
//	 6: source hardware address      (6)
//	12: EtherType                    (2)
//	14: hardware type                (2)
//	16: protocol type                (2)
//	18: hardware address length      (1)
//	19: protocol address length      (1)
//	20: operation                    (2)
//	22: sender hardware address      (6)
//	28: sender IPv4 address          (4)
//	32: target hardware address      (6)
//	38: target IPv4 address          (4)
const (
	offEthDst    = 0
	offEthSrc    = 6
	offEtherType = 12
	offHWLen     = 18
	offIPLen     = 19
	offOperation = 20
	offSender    = 22
	offSenderIP  = 28
	offTarget    = 32
	offTargetIP  = 38

	hwLen   = 6
	ipLen   = 4
	pairLen = hwLen + ipLen

	// FrameLen is the number of bytes in an Ethernet frame carrying an
	// ARP packet for IPv4 over Ethernet.  Shorter frames are never replied to.
	FrameLen = offTargetIP + ipLen
)

// A Frame is a view over a received Ethernet frame.  Replies are constructed
// in place, so a Frame must not be retained once it has been transmitted.
type Frame []byte

// EtherType returns the frame's EtherType.
func (f Frame) EtherType() uint16 {
	return binary.BigEndian.Uint16(f[offEtherType : offEtherType+2])
}

// Operation returns the ARP operation.
func (f Frame) Operation() Operation {
	return Operation(binary.BigEndian.Uint16(f[offOperation : offOperation+2]))
}

// Destination returns the frame's destination hardware address.  The
// returned slice aliases f.
func (f Frame) Destination() net.HardwareAddr {
	return net.HardwareAddr(f[offEthDst : offEthDst+hwLen])
}

// valid reports whether f is an ARP request for IPv4 over Ethernet which
// can be replied to in place.
func (f Frame) valid() bool {
	if len(f) < FrameLen || !isARPRequest(f) {
		return false
	}

	return f[offHWLen] == hwLen && f[offIPLen] == ipLen
}

// targets reports whether the frame's target IPv4 address belongs to id.
func (f Frame) targets(id *Identity) bool {
	return [ipLen]byte(f[offTargetIP:offTargetIP+ipLen]) == id.ip
}

// reply turns an ARP request into a reply from id, modifying f in place.
// The original sender becomes the target of the reply.
func (f Frame) reply(id *Identity) Frame {
	copy(f[offTarget:offTarget+pairLen], f[offSender:offSender+pairLen])
	copy(f[offSender:offSender+hwLen], id.hw[:])
	copy(f[offSenderIP:offSenderIP+ipLen], id.ip[:])

	copy(f[offEthDst:offEthDst+hwLen], f[offEthSrc:offEthSrc+hwLen])
	copy(f[offEthSrc:offEthSrc+hwLen], id.hw[:])

	binary.BigEndian.PutUint16(f[offOperation:offOperation+2], uint16(OperationReply))

	return f[:FrameLen]
}
