// Command arply answers ARP requests for an IPv4 address on behalf of a
// network interface.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"
	"github.com/mdlayher/arply"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type args struct {
	Interface string `arg:"positional,required" placeholder:"IFNAME" help:"network interface to use for ARP traffic"`
	IP        string `arg:"positional,required" placeholder:"IP" help:"IPv4 address to answer ARP requests for"`
	Verbose   bool   `arg:"-v,--verbose" help:"log each request and reply"`
	Write     string `arg:"-w,--write" placeholder:"FILE" help:"record transmitted replies to a pcap file"`
}

func (args) Description() string {
	return "arply replies to ARP requests for IP with the hardware address of IFNAME."
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run runs arply and returns the process exit code.
func run(argv []string, stdout, stderr io.Writer) int {
	// Signals which would otherwise terminate the process are ignored, so
	// that only an explicit shutdown request stops the responder.
	signal.Ignore(unix.SIGALRM, unix.SIGPIPE, unix.SIGUSR1, unix.SIGUSR2, unix.SIGHUP)
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGQUIT, unix.SIGTERM)
	defer stop()

	a, code, ok := parseArgs(argv, stdout)
	if !ok {
		return code
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if a.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ifi, id, err := arply.Resolve(a.Interface, a.IP)
	if err != nil {
		log.WithError(err).Error("resolve identity")
		return 1
	}

	c, err := arply.Listen(ifi)
	if err != nil {
		log.WithError(err).Error("listen")
		return 1
	}
	defer c.Close()

	var rec arply.Recorder
	if a.Write != "" {
		pr, err := arply.CreatePcap(a.Write)
		if err != nil {
			log.WithError(err).Error("create pcap file")
			return 1
		}
		defer pr.Close()
		rec = pr
	}

	fmt.Fprintf(stdout, "Start replying ARP Request: %s\n", id)

	r := &arply.Responder{
		Identity: id,
		Recorder: rec,
		Log:      log.WithField("interface", ifi.Name),
	}
	if err := r.Serve(ctx, c); err != nil {
		log.WithError(err).Error("serve")
		return 1
	}

	log.Debug("shutting down")
	return 0
}

// parseArgs parses command line arguments.  If ok is false, the process
// should exit with code after usage or help was written to w.
func parseArgs(argv []string, w io.Writer) (a args, code int, ok bool) {
	p, err := arg.NewParser(arg.Config{Program: "arply"}, &a)
	if err != nil {
		fmt.Fprintln(w, err)
		return a, 1, false
	}

	switch err := p.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		p.WriteHelp(w)
		return a, 0, false
	case err != nil:
		p.WriteUsage(w)
		return a, 1, false
	}

	return a, 0, true
}
