package session

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/epp"
	"github.com/registryops/eppproxy/internal/logger"
	"github.com/registryops/eppproxy/pkg/auditlog"
	"github.com/registryops/eppproxy/pkg/metrics"
)

// ============================================================================
// Constants
// ============================================================================

const (
	// defaultQueueDepth bounds the inbound request queue.
	defaultQueueDepth = 16

	// defaultKeepaliveInterval is the idle time before a hello frame.
	defaultKeepaliveInterval = 120 * time.Second

	// defaultResponseTimeout is the watchdog for serial-mode responses,
	// hello round trips, and the greeting/login handshake.
	defaultResponseTimeout = 15 * time.Second

	// defaultReconnectDelay is the fixed backoff between reconnect
	// attempts. No growth, no jitter, no cap.
	defaultReconnectDelay = 5 * time.Second

	// maxClockSkew is how far the server clock may drift from ours
	// before greetings draw a warning.
	maxClockSkew = 10 * time.Minute
)

// errLoggedOut marks a clean end of session: logout sent, 1500 received.
var errLoggedOut = errors.New("logged out")

// ============================================================================
// State machine
// ============================================================================

// State is the connection state of a session.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateGreeting
	StateLoginPending
	StateReady
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateGreeting:
		return "greeting"
	case StateLoginPending:
		return "login_pending"
	case StateReady:
		return "ready"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// ============================================================================
// Configuration
// ============================================================================

// Config is the immutable description of one registry connection.
type Config struct {
	// RegistryID names the session in the router, logs, and audit trail.
	RegistryID string

	// Host is the registry endpoint as host:port.
	Host string

	// SourceAddress optionally binds the local side of the TCP
	// connection; registries that allowlist client IPs need it on
	// multi-homed machines.
	SourceAddress string

	// TLS is the prepared client TLS configuration. Nil selects a
	// default with standard verification against Host.
	TLS *tls.Config

	// Username and Password are the EPP login credentials.
	Username string
	Password string

	// NewPassword, when set, is offered on the first login of every
	// connection; a rejected change falls back to the plain login.
	NewPassword string

	// Pipeline allows multiple requests in flight. Off means strict
	// request/response with a response watchdog.
	Pipeline bool

	// Errata tags known-broken registry behaviour for the command
	// encoders (for example "verisign-com").
	Errata string

	// Zones are the DNS suffixes this registry is authoritative for.
	Zones []string

	// TagListSession spawns a subordinate session logged in against the
	// Nominet tag namespace only; tag-list requests are forwarded to it.
	TagListSession bool

	// LoginObjects restricts the object URIs the login advertises.
	// Empty advertises everything the greeting offered. Subordinate
	// sessions use this to scope themselves to one namespace.
	LoginObjects []string

	QueueDepth        int
	KeepaliveInterval time.Duration
	ResponseTimeout   time.Duration
	ReconnectDelay    time.Duration
	MaxFrame          uint32

	// HandshakeTimeout bounds the TLS handshake. Handshakes run one at
	// a time process-wide, so this also paces mass reconnects.
	HandshakeTimeout time.Duration

	// dialFunc overrides the TCP+TLS dial. Tests inject in-memory
	// transports here.
	dialFunc func(ctx context.Context) (net.Conn, error)
}

func (c Config) withDefaults() Config {
	if c.QueueDepth <= 0 {
		c.QueueDepth = defaultQueueDepth
	}
	if c.KeepaliveInterval <= 0 {
		c.KeepaliveInterval = defaultKeepaliveInterval
	}
	if c.ResponseTimeout <= 0 {
		c.ResponseTimeout = defaultResponseTimeout
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.MaxFrame == 0 {
		c.MaxFrame = epp.DefaultMaxFrame
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = dialTimeout
	}
	return c
}

// ============================================================================
// Session
// ============================================================================

// call pairs a submitted request with its reply channel.
type call struct {
	req   commands.Request
	reply chan callResult
}

// Session owns one logical connection to one registry. Create with New,
// drive with Run in its own goroutine, submit requests with Submit from
// any goroutine.
type Session struct {
	cfg            Config
	audit          auditlog.Store
	sessionMetrics metrics.SessionMetrics

	inbound chan *call
	pending *pendingReplies
	state   atomic.Int32

	// credMu guards the live credentials. They start from Config and
	// mutate once the registry accepts a password change, so every later
	// reconnect authenticates with the password the registry now expects.
	credMu      sync.Mutex
	password    string
	newPassword string

	featuresMu sync.RWMutex
	features   *FeatureSet

	// sub is the subordinate tag-namespace session, nil for most
	// registries.
	sub *Session

	done chan struct{}
}

// New builds a session. audit may be nil to skip frame recording and
// m may be nil to skip metrics, both with zero overhead.
func New(cfg Config, audit auditlog.Store, m metrics.SessionMetrics) *Session {
	cfg = cfg.withDefaults()
	if audit == nil {
		audit = auditlog.Nop{}
	}
	return &Session{
		cfg:            cfg,
		audit:          audit,
		sessionMetrics: m,
		password:       cfg.Password,
		newPassword:    cfg.NewPassword,
		inbound:        make(chan *call, cfg.QueueDepth),
		pending:        newPendingReplies(),
		done:           make(chan struct{}),
	}
}

// RegistryID returns the session's registry id.
func (s *Session) RegistryID() string { return s.cfg.RegistryID }

// Zones returns the DNS suffixes this session is authoritative for.
func (s *Session) Zones() []string { return s.cfg.Zones }

// State returns the current connection state.
func (s *Session) State() State { return State(s.state.Load()) }

// Features returns the negotiated feature set, nil before the first
// successful login.
func (s *Session) Features() *FeatureSet {
	s.featuresMu.RLock()
	defer s.featuresMu.RUnlock()
	return s.features
}

func (s *Session) setFeatures(fs *FeatureSet) {
	s.featuresMu.Lock()
	s.features = fs
	s.featuresMu.Unlock()
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
	logger.Debug("session state", "registry", s.cfg.RegistryID, "state", st.String())
	if s.sessionMetrics != nil {
		s.sessionMetrics.RecordConnectionState(s.cfg.RegistryID, st.String())
	}
}

// ============================================================================
// Submission
// ============================================================================

// Submit queues one request and blocks until its response, the caller's
// context, or session teardown. Requests submitted while the session is
// not Ready are rejected with NotReady immediately.
func (s *Session) Submit(ctx context.Context, req commands.Request) (*commands.Result, error) {
	if st := s.State(); st != StateReady {
		return nil, commands.NotReady()
	}

	c := &call{req: req, reply: make(chan callResult, 1)}
	select {
	case s.inbound <- c:
	case <-s.done:
		return nil, commands.NotReady()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-c.reply:
		return r.res, r.err
	case <-s.done:
		// Drain may have completed the reply just before done closed.
		select {
		case r := <-c.reply:
			return r.res, r.err
		default:
		}
		return nil, commands.NotReady()
	case <-ctx.Done():
		// The abandoned reply channel is buffered; eventual delivery is
		// discarded with it.
		return nil, ctx.Err()
	}
}

// Logout sends the logout command and waits for the 1500 confirmation.
// The session closes permanently afterwards.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.Submit(ctx, &commands.LogoutRequest{})
	return err
}

// ============================================================================
// Lifecycle
// ============================================================================

// Run drives the session until the context ends, a permanent negotiation
// failure occurs, or a logout completes. It reconnects with a fixed
// backoff on every transport failure.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.drainPending()

	if s.cfg.TagListSession {
		subCfg := s.cfg
		subCfg.TagListSession = false
		subCfg.RegistryID = s.cfg.RegistryID + "-tag"
		subCfg.LoginObjects = []string{epp.NSNominetTag}
		s.sub = New(subCfg, s.audit, s.sessionMetrics)
		go func() {
			if err := s.sub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("subordinate session ended",
					"registry", subCfg.RegistryID, "error", err)
			}
		}()
	}

	for {
		err := s.connectCycle(ctx)
		switch {
		case errors.Is(err, errLoggedOut):
			s.setState(StateClosed)
			return nil
		case isPermanent(err):
			s.setState(StateClosed)
			logger.Error("session closed permanently",
				"registry", s.cfg.RegistryID, "error", err)
			return err
		case ctx.Err() != nil:
			s.setState(StateClosed)
			return ctx.Err()
		}

		s.setState(StateDisconnected)
		logger.Warn("session disconnected",
			"registry", s.cfg.RegistryID,
			"error", err,
			"retry_in", s.cfg.ReconnectDelay)
		if s.sessionMetrics != nil {
			s.sessionMetrics.RecordReconnect(s.cfg.RegistryID)
		}

		select {
		case <-ctx.Done():
			s.setState(StateClosed)
			return ctx.Err()
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
}

// connectCycle runs one connection from dial to teardown. Whatever is
// still pending when it returns is drained with NotReady.
func (s *Session) connectCycle(ctx context.Context) error {
	defer s.drainPending()

	s.setState(StateConnecting)
	tr, err := s.dialTransport(ctx)
	if err != nil {
		return err
	}
	defer tr.close()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	recv := make(chan recvMsg, 1)
	go s.receiveLoop(connCtx, tr, recv)

	s.setState(StateGreeting)
	greeting, err := s.awaitGreeting(recv)
	if err != nil {
		return err
	}
	s.checkClockSkew(greeting)

	fs, err := negotiate(greeting, s.cfg.Errata, s.cfg.LoginObjects)
	if err != nil {
		return err
	}

	s.setState(StateLoginPending)
	if err := s.login(tr, recv, fs); err != nil {
		return err
	}
	s.setFeatures(fs)

	s.setState(StateReady)
	logger.Info("session ready",
		"registry", s.cfg.RegistryID,
		"server", fs.ServerID(),
		"lang", fs.Language(),
		"pipeline", s.cfg.Pipeline)
	return s.serve(ctx, tr, recv)
}

func (s *Session) dialTransport(ctx context.Context) (*transport, error) {
	if s.cfg.dialFunc != nil {
		conn, err := s.cfg.dialFunc(ctx)
		if err != nil {
			return nil, err
		}
		return &transport{conn: conn, maxFrame: s.cfg.MaxFrame}, nil
	}
	return dialRegistry(ctx, &s.cfg)
}

// ============================================================================
// Handshake
// ============================================================================

func (s *Session) awaitGreeting(recv <-chan recvMsg) (*epp.Greeting, error) {
	timer := time.NewTimer(s.cfg.ResponseTimeout)
	defer timer.Stop()

	select {
	case m := <-recv:
		if m.err != nil {
			return nil, m.err
		}
		if m.env.Greeting == nil {
			return nil, errors.New("expected a greeting as the first frame")
		}
		return m.env.Greeting, nil
	case <-timer.C:
		return nil, errors.New("timed out waiting for greeting")
	}
}

// login authenticates the connection. With a pending new password the
// first attempt offers the change; any non-permanent rejection falls
// back to the plain login. Once the registry accepts the change the
// session adopts the new password, so later reconnects send only that.
func (s *Session) login(tr *transport, recv <-chan recvMsg, fs *FeatureSet) error {
	s.credMu.Lock()
	password, newPassword := s.password, s.newPassword
	s.credMu.Unlock()

	if newPassword != "" {
		err := s.loginOnce(tr, recv, fs, password, newPassword)
		if err == nil {
			s.credMu.Lock()
			s.password = newPassword
			s.newPassword = ""
			s.credMu.Unlock()
			logger.Info("registry accepted the password change",
				"registry", s.cfg.RegistryID)
			return nil
		}
		if isPermanent(err) {
			return err
		}
		logger.Warn("login with password change rejected; retrying without",
			"registry", s.cfg.RegistryID, "error", err)
	}
	return s.loginOnce(tr, recv, fs, password, "")
}

func (s *Session) loginOnce(tr *transport, recv <-chan recvMsg, fs *FeatureSet, password, newPassword string) error {
	login := &epp.Login{
		ClientID: s.cfg.Username,
		Password: password,
		Options:  epp.LoginOptions{Version: "1.0", Language: fs.Language()},
		Services: epp.LoginServices{ObjectURIs: fs.ObjectURIs()},
	}
	if exts := fs.ExtensionURIs(); len(exts) > 0 {
		login.Services.SvcExtension = &epp.SvcExtension{ExtensionURIs: exts}
	}
	if newPassword != "" {
		npw := newPassword
		login.NewPassword = &npw
	}

	cmd := &epp.Command{Login: login, ClTRID: uuid.NewString()}

	// RFC 8807: the 16-character pw element carries a placeholder and
	// the real credentials travel in the extension.
	if fs.HasExtension(epp.NSLoginSec) {
		sec := &epp.LoginSec{
			UserAgent: &epp.LoginSecUserAgent{App: "eppproxy", Tech: "go"},
			Password:  password,
		}
		login.Password = epp.LoginSecPlaceholder
		if newPassword != "" {
			placeholder := epp.LoginSecPlaceholder
			login.NewPassword = &placeholder
			sec.NewPassword = newPassword
		}
		cmd.Extension = &epp.Extension{Payloads: []any{sec}}
	}

	if err := s.sendEnvelope(tr, &epp.EPP{Command: cmd}); err != nil {
		return err
	}

	timer := time.NewTimer(s.cfg.ResponseTimeout)
	defer timer.Stop()
	for {
		select {
		case m := <-recv:
			if m.err != nil {
				return m.err
			}
			if m.env.Response == nil {
				// Stray greeting between login and reply; keep waiting.
				continue
			}
			res := m.env.Response.FirstResult()
			if !epp.IsSuccess(res.Code) {
				return fmt.Errorf("login rejected: %w", commands.FromResult(res))
			}
			return nil
		case <-timer.C:
			return errors.New("timed out waiting for login response")
		}
	}
}

// ============================================================================
// Serve loop
// ============================================================================

// serve is the session's scheduling loop while Ready: it selects over
// inbound requests, decoded inbound messages, and the keepalive timer.
// It returns on transport failure, watchdog expiry, context end, or a
// server-closing response.
func (s *Session) serve(ctx context.Context, tr *transport, recv <-chan recvMsg) error {
	keepalive := time.NewTimer(s.cfg.KeepaliveInterval)
	defer keepalive.Stop()

	watchdog := time.NewTimer(s.cfg.ResponseTimeout)
	stopTimer(watchdog)
	defer watchdog.Stop()
	watchdogArmed := false

	awaiting := false
	helloPending := false
	draining := false

	// The watchdog runs whenever something must answer within the
	// response timeout: a serial-mode request, the logout confirmation,
	// or a hello round trip. Armed on the transition into a waiting
	// condition so the deadline counts from the send.
	syncWatchdog := func() {
		need := helloPending || (awaiting && (!s.cfg.Pipeline || draining))
		if need && !watchdogArmed {
			watchdog.Reset(s.cfg.ResponseTimeout)
			watchdogArmed = true
		}
		if !need && watchdogArmed {
			stopTimer(watchdog)
			watchdogArmed = false
		}
	}

	for {
		inbound := s.inbound
		if draining || (!s.cfg.Pipeline && awaiting) {
			inbound = nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case c := <-inbound:
			if c.req.Op() == commands.OpLogout {
				draining = true
				s.setState(StateDraining)
				if s.sub != nil {
					s.logoutSubordinate(ctx)
				}
			}
			if s.sub != nil && c.req.Op() == commands.OpNominetTagList {
				go s.forwardToSubordinate(ctx, c)
			} else {
				sent, err := s.dispatch(tr, c)
				if err != nil {
					return err
				}
				if sent {
					awaiting = true
				}
			}
			resetTimer(keepalive, s.cfg.KeepaliveInterval)
			syncWatchdog()

		case m := <-recv:
			if m.err != nil {
				return m.err
			}
			resetTimer(keepalive, s.cfg.KeepaliveInterval)

			switch {
			case m.env.Response != nil:
				awaiting = false
				err := s.handleResponse(m.env.Response, draining)
				syncWatchdog()
				if err != nil {
					return err
				}

			case m.env.Greeting != nil:
				s.checkClockSkew(m.env.Greeting)
				if helloPending {
					helloPending = false
					if s.sessionMetrics != nil {
						s.sessionMetrics.RecordKeepalive(s.cfg.RegistryID, true)
					}
				}
				syncWatchdog()

			default:
				logger.Warn("unexpected message type from server",
					"registry", s.cfg.RegistryID)
			}

		case <-keepalive.C:
			if err := s.sendEnvelope(tr, &epp.EPP{Hello: &epp.Hello{}}); err != nil {
				return err
			}
			helloPending = true
			keepalive.Reset(s.cfg.KeepaliveInterval)
			syncWatchdog()

		case <-watchdog.C:
			watchdogArmed = false
			if helloPending {
				if s.sessionMetrics != nil {
					s.sessionMetrics.RecordKeepalive(s.cfg.RegistryID, false)
				}
				return errors.New("keepalive round trip timed out")
			}
			return errors.New("response watchdog expired")
		}
	}
}

// dispatch encodes and sends one request. Encoder rejections complete
// the caller's reply without touching the transport; only transport and
// codec failures are returned, and they tear the connection down.
func (s *Session) dispatch(tr *transport, c *call) (sent bool, err error) {
	start := time.Now()
	cmd, err := commands.Encode(s.Features(), c.req)
	if err != nil {
		waiter{reply: c.reply}.deliver(nil, err)
		s.recordCommand(c.req.Op(), start, err)
		return false, nil
	}

	id := uuid.New()
	cmd.ClTRID = id.String()
	if err := s.pending.insert(id, waiter{op: c.req.Op(), reply: c.reply}); err != nil {
		waiter{reply: c.reply}.deliver(nil, err)
		s.recordCommand(c.req.Op(), start, err)
		return false, nil
	}

	if err := s.sendEnvelope(tr, &epp.EPP{Command: cmd}); err != nil {
		// The waiter stays in the table; the drain completes it with
		// NotReady.
		return false, err
	}
	return true, nil
}

// handleResponse correlates one response and delivers it. A nil return
// keeps the connection; errors tear it down.
func (s *Session) handleResponse(resp *epp.Response, draining bool) error {
	id, err := uuid.Parse(resp.TrID.ClTRID)
	if err != nil {
		return fmt.Errorf("response carries invalid client transaction id %q", resp.TrID.ClTRID)
	}

	w, ok := s.pending.take(id)
	if !ok {
		logger.Warn("response for unknown transaction",
			"registry", s.cfg.RegistryID, "cltrid", resp.TrID.ClTRID)
		return errors.New("response correlation miss")
	}

	start := time.Now()
	result, derr := commands.Decode(w.op, resp)
	w.deliver(result, derr)
	s.recordCommand(w.op, start, derr)

	if code := resp.FirstResult().Code; epp.IsClosing(code) {
		if draining && code == epp.CodeSuccessEndSession {
			return errLoggedOut
		}
		return fmt.Errorf("server closing session (code %d)", code)
	}
	return nil
}

// receiveLoop is the subordinate goroutine owning the read half: it
// feeds decoded envelopes (or the terminal error) to the scheduling
// loop.
func (s *Session) receiveLoop(ctx context.Context, tr *transport, out chan<- recvMsg) {
	for {
		payload, err := tr.read()
		if err != nil {
			select {
			case out <- recvMsg{err: err}:
			case <-ctx.Done():
			}
			return
		}
		s.recordFrame("received", len(payload))
		s.auditFrame(ctx, auditlog.DirectionReceived, payload)

		env, err := epp.Unmarshal(payload)
		if err != nil {
			select {
			case out <- recvMsg{err: err}:
			case <-ctx.Done():
			}
			return
		}
		select {
		case out <- recvMsg{env: env}:
		case <-ctx.Done():
			return
		}
	}
}

type recvMsg struct {
	env *epp.EPP
	err error
}

// ============================================================================
// Subordinate forwarding
// ============================================================================

func (s *Session) forwardToSubordinate(ctx context.Context, c *call) {
	res, err := s.sub.Submit(ctx, c.req)
	waiter{reply: c.reply}.deliver(res, err)
}

func (s *Session) logoutSubordinate(ctx context.Context) {
	lctx, cancel := context.WithTimeout(ctx, s.cfg.ResponseTimeout)
	defer cancel()
	if err := s.sub.Logout(lctx); err != nil {
		logger.Warn("subordinate logout failed",
			"registry", s.sub.cfg.RegistryID, "error", err)
	}
}

// ============================================================================
// Plumbing
// ============================================================================

func (s *Session) sendEnvelope(tr *transport, env *epp.EPP) error {
	payload, err := epp.Marshal(env)
	if err != nil {
		return err
	}
	if err := tr.send(payload); err != nil {
		return err
	}
	s.recordFrame("sent", len(payload))
	s.auditFrame(context.Background(), auditlog.DirectionSent, payload)
	return nil
}

func (s *Session) drainPending() {
	for _, w := range s.pending.drain() {
		w.deliver(nil, commands.NotReady())
	}
}

// auditFrame records one frame; failures are logged, never fatal.
func (s *Session) auditFrame(ctx context.Context, dir auditlog.Direction, payload []byte) {
	entry := auditlog.Entry{
		Registry:  s.cfg.RegistryID,
		Direction: dir,
		At:        time.Now().UTC(),
		Data:      payload,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		logger.Warn("audit append failed",
			"registry", s.cfg.RegistryID, "direction", string(dir), "error", err)
	}
}

func (s *Session) recordFrame(direction string, size int) {
	if s.sessionMetrics != nil {
		s.sessionMetrics.RecordFrame(s.cfg.RegistryID, direction, size)
	}
}

func (s *Session) recordCommand(op commands.Op, start time.Time, err error) {
	if s.sessionMetrics == nil {
		return
	}
	outcome := "ok"
	var cmdErr *commands.Error
	if errors.As(err, &cmdErr) {
		outcome = cmdErr.Kind.String()
	} else if err != nil {
		outcome = "error"
	}
	s.sessionMetrics.RecordCommand(s.cfg.RegistryID, commands.Name(op), time.Since(start), outcome)
}

func (s *Session) checkClockSkew(g *epp.Greeting) {
	when, err := epp.ParseTime(g.ServerDate)
	if err != nil || when.IsZero() {
		return
	}
	if skew := time.Since(when); skew > maxClockSkew || skew < -maxClockSkew {
		logger.Warn("server clock skew",
			"registry", s.cfg.RegistryID, "server_date", g.ServerDate, "skew", skew)
	}
}

// stopTimer stops a timer and drains its channel if it already fired.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}
