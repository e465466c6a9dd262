package arply

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// A Recorder records frames transmitted by a Responder.
type Recorder interface {
	Record(frame []byte) error
}

// snapLen is the snapshot length written to pcap file headers.
const snapLen = 65536

// A PcapRecorder is a Recorder which writes frames to a pcap stream with an
// Ethernet link type.
type PcapRecorder struct {
	w   *pcapgo.Writer
	c   io.Closer
	now func() time.Time
}

// CreatePcap creates or truncates the named file and returns a PcapRecorder
// which writes to it.
func CreatePcap(path string) (*PcapRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	r, err := NewPcapRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.c = f

	return r, nil
}

// NewPcapRecorder writes a pcap file header to w and returns a PcapRecorder
// which writes subsequent frames to w.
func NewPcapRecorder(w io.Writer) (*PcapRecorder, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("write pcap header: %w", err)
	}

	return &PcapRecorder{
		w:   pw,
		now: time.Now,
	}, nil
}

// Record implements Recorder.
func (r *PcapRecorder) Record(frame []byte) error {
	return r.w.WritePacket(gopacket.CaptureInfo{
		Timestamp:     r.now(),
		CaptureLength: len(frame),
		Length:        len(frame),
	}, frame)
}

// Close closes the underlying file, if the PcapRecorder was created by
// CreatePcap.
func (r *PcapRecorder) Close() error {
	if r.c == nil {
		return nil
	}

	return r.c.Close()
}
