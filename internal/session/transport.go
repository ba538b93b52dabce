package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/registryops/eppproxy/internal/epp"
)

// tlsHandshakeMu serialises TLS handshakes process-wide. Some registries
// drop the TCP connection when no ClientHello arrives within ~10s; with
// many sessions connecting at once (and HSM-backed keys blocking inside
// the handshake) concurrent negotiations starve each other. One
// handshake at a time keeps every ClientHello prompt.
var tlsHandshakeMu sync.Mutex

const dialTimeout = 10 * time.Second

// transport is one live connection. The read half belongs to the receive
// loop; writes are serialised so keepalives never interleave with
// request frames.
type transport struct {
	conn     net.Conn
	writeMu  sync.Mutex
	maxFrame uint32
}

// dialRegistry establishes TCP and TLS to the registry, optionally
// binding the local source address first.
func dialRegistry(ctx context.Context, cfg *Config) (*transport, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	if cfg.SourceAddress != "" {
		local, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(cfg.SourceAddress, "0"))
		if err != nil {
			return nil, fmt.Errorf("resolve source address %q: %w", cfg.SourceAddress, err)
		}
		dialer.LocalAddr = local
	}

	raw, err := dialer.DialContext(ctx, "tcp", cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Host, err)
	}

	tlsCfg := cfg.TLS
	if tlsCfg == nil {
		host, _, splitErr := net.SplitHostPort(cfg.Host)
		if splitErr != nil {
			host = cfg.Host
		}
		tlsCfg = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	}

	conn := tls.Client(raw, tlsCfg)
	tlsHandshakeMu.Lock()
	hsCtx, hsCancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	err = conn.HandshakeContext(hsCtx)
	hsCancel()
	tlsHandshakeMu.Unlock()
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", cfg.Host, err)
	}
	return &transport{conn: conn, maxFrame: cfg.MaxFrame}, nil
}

// send writes one frame. Safe for the dispatcher and the keepalive path
// to share.
func (t *transport) send(payload []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return epp.WriteFrame(t.conn, payload)
}

// read returns the next frame payload. Only the receive loop calls this.
func (t *transport) read() ([]byte, error) {
	return epp.ReadFrame(t.conn, t.maxFrame)
}

// close tears the connection down, unblocking any reader.
func (t *transport) close() error {
	return t.conn.Close()
}
