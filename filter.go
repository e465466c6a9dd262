package arply

import (
	"golang.org/x/net/bpf"
	"golang.org/x/sys/unix"
)

// acceptAll is the number of bytes of an accepted frame passed to user space
// by the kernel; it exceeds any link-layer MTU.
const acceptAll = 0x40000

// requestFilter is a classic BPF program which only accepts Ethernet frames
// carrying ARP requests.  isARPRequest is its user-space equivalent.
var requestFilter = []bpf.Instruction{
	// EtherType must be ARP.
	bpf.LoadAbsolute{Off: offEtherType, Size: 2},
	bpf.JumpIf{Cond: bpf.JumpEqual, Val: unix.ETH_P_ARP, SkipFalse: 3},
	// Operation must be request.
	bpf.LoadAbsolute{Off: offOperation, Size: 2},
	bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(OperationRequest), SkipFalse: 1},
	bpf.RetConstant{Val: acceptAll},
	bpf.RetConstant{Val: 0},
}

// isARPRequest reports whether b is an Ethernet frame carrying an ARP
// request, checking the same fields as requestFilter.
func isARPRequest(b []byte) bool {
	if len(b) < offOperation+2 {
		return false
	}
	f := Frame(b)
	return f.EtherType() == unix.ETH_P_ARP && f.Operation() == OperationRequest
}

// assembleFilter assembles requestFilter for attachment to a socket.
func assembleFilter() ([]bpf.RawInstruction, error) {
	return bpf.Assemble(requestFilter)
}
