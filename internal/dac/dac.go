// Package dac implements the Nominet Domain Availability Checker line
// protocol: a plain TCP service, one comma-separated reply line per
// newline-terminated query. The real-time and time-delayed endpoints
// differ only by address and rate limits.
package dac

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// dateLayout is the date format DAC replies use.
	dateLayout = "2006-01-02"
)

// Config holds the two endpoint addresses. An empty address disables
// that environment.
type Config struct {
	RealTimeAddr  string
	TimeDelayAddr string
	SourceAddress string
	Timeout       time.Duration
}

// Client multiplexes queries over one connection per environment,
// reconnecting lazily after errors. Queries are strictly one in flight
// per environment; the protocol has no correlation ids.
type Client struct {
	cfg Config

	mu    sync.Mutex
	conns map[commands.DACEnvironment]*line
}

type line struct {
	conn net.Conn
	rd   *bufio.Reader
}

// New creates a client; no connection is made until the first query.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg, conns: make(map[commands.DACEnvironment]*line)}
}

// Do answers one typed DAC request.
func (c *Client) Do(ctx context.Context, req commands.Request) (any, error) {
	switch r := req.(type) {
	case *commands.DACDomainRequest:
		return c.Domain(ctx, r)
	case *commands.DACUsageRequest:
		return c.Usage(ctx, r)
	case *commands.DACLimitsRequest:
		return c.Limits(ctx, r)
	default:
		return nil, commands.Unsupported(fmt.Sprintf("dac operation %q", req.Op()))
	}
}

// Domain queries one domain's registration state.
func (c *Client) Domain(ctx context.Context, req *commands.DACDomainRequest) (*commands.DACDomainResponse, error) {
	name := strings.ToLower(strings.TrimSpace(req.Domain))
	if name == "" {
		return nil, commands.Errf("domain name is required")
	}

	reply, err := c.query(ctx, req.Environment, name)
	if err != nil {
		return nil, err
	}
	return parseDomainReply(name, reply)
}

// Usage queries the rolling usage counters.
func (c *Client) Usage(ctx context.Context, req *commands.DACUsageRequest) (*commands.DACUsageResponse, error) {
	reply, err := c.query(ctx, req.Environment, "#usage")
	if err != nil {
		return nil, err
	}
	a, b, err := parseCounterReply("#usage", reply)
	if err != nil {
		return nil, err
	}
	return &commands.DACUsageResponse{Usage60: a, Usage24h: b}, nil
}

// Limits queries the remaining query allowance.
func (c *Client) Limits(ctx context.Context, req *commands.DACLimitsRequest) (*commands.DACLimitsResponse, error) {
	reply, err := c.query(ctx, req.Environment, "#limits")
	if err != nil {
		return nil, err
	}
	a, b, err := parseCounterReply("#limits", reply)
	if err != nil {
		return nil, err
	}
	return &commands.DACLimitsResponse{Limit60: a, Limit24h: b}, nil
}

// Close drops every open connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for env, l := range c.conns {
		l.conn.Close()
		delete(c.conns, env)
	}
	return nil
}

// query sends one line and reads one reply line, holding the client
// lock for the whole round trip.
func (c *Client) query(ctx context.Context, env commands.DACEnvironment, q string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, err := c.connLocked(ctx, env)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	l.conn.SetDeadline(deadline)

	if _, err := fmt.Fprintf(l.conn, "%s\r\n", q); err != nil {
		c.dropLocked(env)
		return "", fmt.Errorf("dac write: %w", err)
	}
	reply, err := l.rd.ReadString('\n')
	if err != nil {
		c.dropLocked(env)
		return "", fmt.Errorf("dac read: %w", err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

func (c *Client) connLocked(ctx context.Context, env commands.DACEnvironment) (*line, error) {
	if l, ok := c.conns[env]; ok {
		return l, nil
	}

	addr := ""
	switch env {
	case commands.DACRealTime, "":
		addr = c.cfg.RealTimeAddr
	case commands.DACTimeDelay:
		addr = c.cfg.TimeDelayAddr
	default:
		return nil, commands.Errf("unknown dac environment %q", env)
	}
	if addr == "" {
		return nil, commands.Unsupported(fmt.Sprintf("dac %s endpoint", env))
	}

	dialer := net.Dialer{Timeout: c.cfg.Timeout}
	if c.cfg.SourceAddress != "" {
		local, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(c.cfg.SourceAddress, "0"))
		if err != nil {
			return nil, fmt.Errorf("resolve source address %q: %w", c.cfg.SourceAddress, err)
		}
		dialer.LocalAddr = local
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial dac %s: %w", addr, err)
	}
	logger.Debug("dac connected", "addr", addr, "environment", string(env))

	l := &line{conn: conn, rd: bufio.NewReader(conn)}
	c.conns[env] = l
	return l, nil
}

func (c *Client) dropLocked(env commands.DACEnvironment) {
	if l, ok := c.conns[env]; ok {
		l.conn.Close()
		delete(c.conns, env)
	}
}

// parseDomainReply decodes a registration-state line:
//
//	example.co.uk,Y,2005-05-12,2026-05-12,REGISTRAR-TAG
//
// Detagged domains report D in the flag field; unregistered names carry
// only the N flag.
func parseDomainReply(name, reply string) (*commands.DACDomainResponse, error) {
	fields := strings.Split(reply, ",")
	if len(fields) < 2 || !strings.EqualFold(fields[0], name) {
		return nil, commands.ServerInternal(fmt.Sprintf("malformed dac reply %q", reply))
	}

	out := &commands.DACDomainResponse{Domain: fields[0]}
	switch strings.ToUpper(fields[1]) {
	case "Y":
		out.Registered = true
	case "N":
	case "D":
		out.Registered = true
		out.Detagged = true
	default:
		return nil, commands.ServerInternal(fmt.Sprintf("unknown dac flag %q", fields[1]))
	}

	if len(fields) > 2 && fields[2] != "" {
		if when, err := time.Parse(dateLayout, fields[2]); err == nil {
			out.Created = when
		}
	}
	if len(fields) > 3 && fields[3] != "" {
		if when, err := time.Parse(dateLayout, fields[3]); err == nil {
			out.Expires = when
		}
	}
	if len(fields) > 4 {
		out.Tag = fields[4]
	}
	return out, nil
}

// parseCounterReply decodes the #usage/#limits answers: the echoed
// command followed by the 60-second and 24-hour values.
func parseCounterReply(cmd, reply string) (uint64, uint64, error) {
	fields := strings.Split(reply, ",")
	if len(fields) < 3 || fields[0] != cmd {
		return 0, 0, commands.ServerInternal(fmt.Sprintf("malformed dac reply %q", reply))
	}
	a, errA := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	b, errB := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 64)
	if err := errors.Join(errA, errB); err != nil {
		return 0, 0, commands.ServerInternal(fmt.Sprintf("malformed dac counters %q", reply))
	}
	return a, b, nil
}
