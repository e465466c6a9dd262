package arply

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/mdlayher/packet"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// readBufferSize is large enough for any ARP frame; longer frames are
// truncated by the kernel and still parse correctly.
const readBufferSize = 128

// recvErrorInterval limits how often receive errors are logged, since a
// persistent error such as ENETDOWN repeats on every read.
const recvErrorInterval = time.Second

// A Responder answers ARP requests for the IPv4 address of its Identity,
// claiming that the address belongs to the Identity's hardware address.
type Responder struct {
	// Identity is the hardware and IPv4 address pair to answer on behalf
	// of.  It must not be nil.
	Identity *Identity

	// Recorder, if not nil, records every transmitted reply.
	Recorder Recorder

	// Log is used for diagnostics.  If nil, the logrus standard logger is
	// used.
	Log *logrus.Entry
}

// Serve reads ARP requests from c and replies to those targeting the
// Responder's IPv4 address, using the same connection, until ctx is
// canceled.
//
// Serve returns nil when ctx is canceled or c reports io.EOF.  Frames which
// are not ARP requests for IPv4 over Ethernet are ignored, as are receive
// errors.  Serve returns an error wrapping ErrWaitFailed if c is closed
// from elsewhere, or ErrSendFailed if a reply cannot be sent due to a
// non-transient error.
func (r *Responder) Serve(ctx context.Context, c net.PacketConn) error {
	if r.Identity == nil {
		return errors.New("arply: Responder has no Identity")
	}
	log := r.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	// Interrupt a blocked read once ctx is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.SetReadDeadline(time.Unix(1, 0))
		case <-done:
		}
	}()

	var recvErrs errorThrottle
	buf := make([]byte, readBufferSize)
	for {
		n, _, err := c.ReadFrom(buf)
		if ctx.Err() != nil {
			// Frames read after shutdown was requested are never answered.
			return nil
		}
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, net.ErrClosed):
				return fmt.Errorf("%w: %v", ErrWaitFailed, err)
			}

			if ok, suppressed := recvErrs.allow(time.Now()); ok {
				l := log.WithError(err)
				if suppressed > 0 {
					l = l.WithField("suppressed", suppressed)
				}
				l.Error("recv")
			}
			continue
		}

		if err := r.serve(log, c, Frame(buf[:n])); err != nil {
			return err
		}
	}
}

// serve handles a single received frame.  f is only valid for the duration
// of the call.
func (r *Responder) serve(log *logrus.Entry, c net.PacketConn, f Frame) error {
	if !f.valid() || !f.targets(r.Identity) {
		return nil
	}

	debug := log.Logger.IsLevelEnabled(logrus.DebugLevel)
	if debug {
		if req, err := parseRequest(f); err == nil {
			log.Debugf("request: %s", req)
		}
	}

	reply := f.reply(r.Identity)
	if _, err := c.WriteTo(reply, &packet.Addr{HardwareAddr: reply.Destination()}); err != nil {
		if isTransient(err) {
			log.WithError(err).Debug("send: transient error, reply dropped")
			return nil
		}

		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if debug {
		log.Debugf("  reply: %s is-at %s", r.Identity.IP(), r.Identity.HardwareAddr())
	}

	if r.Recorder != nil {
		if err := r.Recorder.Record(reply); err != nil {
			log.WithError(err).Warn("record reply")
		}
	}

	return nil
}

// An errorThrottle allows one error per recvErrorInterval and counts the
// errors suppressed in between.
type errorThrottle struct {
	last       time.Time
	suppressed int
}

// allow reports whether an error occurring at now should be logged, and how
// many errors were suppressed since the last one logged.
func (t *errorThrottle) allow(now time.Time) (bool, int) {
	if !t.last.IsZero() && now.Sub(t.last) < recvErrorInterval {
		t.suppressed++
		return false, 0
	}

	n := t.suppressed
	t.last, t.suppressed = now, 0
	return true, n
}

// isTransient reports whether a send error may succeed if retried for a
// later request.
func isTransient(err error) bool {
	return errors.Is(err, unix.EINTR) ||
		errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.ENETDOWN)
}
