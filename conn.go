package arply

import (
	"fmt"
	"net"

	"github.com/mdlayher/packet"
	"golang.org/x/sys/unix"
)

// Listen opens a raw link-layer socket on ifi which receives Ethernet frames
// of all protocols, and attaches a filter so that only ARP requests are
// delivered to user space.  The returned connection is used both to receive
// requests and to transmit replies.
func Listen(ifi *net.Interface) (*packet.Conn, error) {
	c, err := packet.Listen(ifi, packet.Raw, unix.ETH_P_ALL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBindFailed, ifi.Name, err)
	}

	filter, err := assembleFilter()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: assemble: %v", ErrFilterAttachFailed, err)
	}
	if err := c.SetBPF(filter); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrFilterAttachFailed, ifi.Name, err)
	}

	return c, nil
}
