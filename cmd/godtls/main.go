// Command godtls is a minimal demonstration client: it wires the
// dtls.Connect driver to a bare UDP socket using a naive, single-shot
// reliable-handshake/record-layer pair and a PSK TlsClient. It exists to
// exercise the library end-to-end, not as a production DTLS client —
// real deployments need retransmission, fragmentation, replay
// protection and actual record encryption, all of which are out of
// scope for the core (spec §1) and are stubbed here just enough to
// drive one handshake over a reliable loopback-style link.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pion/logging"

	dtls "github.com/1stship/godtls"
)

func main() {
	const version = "0.0.1"
	dispVersion := false

	var host string
	var identity string
	var pskB64 string
	flag.BoolVar(&dispVersion, "version", false, "print version")
	flag.StringVar(&host, "host", "", "server host:port (udp)")
	flag.StringVar(&identity, "identity", "", "PSK identity")
	flag.StringVar(&pskB64, "psk", "", "pre-shared key, base64-encoded")
	flag.Parse()

	if dispVersion {
		fmt.Printf("godtls: ver %s\n", version)
		os.Exit(0)
	}
	if host == "" || identity == "" || pskB64 == "" {
		fmt.Fprintln(os.Stderr, "usage: godtls -host <host:port> -identity <id> -psk <base64 psk>")
		os.Exit(1)
	}
	psk, err := base64.StdEncoding.DecodeString(pskB64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -psk: %s\n", err)
		os.Exit(1)
	}

	conn, err := newUDPHandshakeLink(host)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial failed: %s\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	cfg := &dtls.Config{
		LoggerFactory: logging.NewDefaultLoggerFactory(),
		RNG:           rand.Reader,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transport, err := dtls.Connect(ctx, newPSKClient(identity, psk), conn, conn, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "handshake failed: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("handshake complete, record layer ready: %T\n", transport.Record)
}
