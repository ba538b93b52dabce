package session

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/epp"
)

// ============================================================================
// Fake registry plumbing
// ============================================================================

// pipeDialer returns a dial function that backs every connection attempt
// with an in-memory pipe whose server half is driven by handler.
func pipeDialer(handler func(conn net.Conn)) func(ctx context.Context) (net.Conn, error) {
	return func(ctx context.Context) (net.Conn, error) {
		client, server := net.Pipe()
		go handler(server)
		return client, nil
	}
}

func sendEnv(conn net.Conn, env *epp.EPP) error {
	payload, err := epp.Marshal(env)
	if err != nil {
		return err
	}
	return epp.WriteFrame(conn, payload)
}

func readEnv(conn net.Conn) (*epp.EPP, error) {
	payload, err := epp.ReadFrame(conn, 0)
	if err != nil {
		return nil, err
	}
	return epp.Unmarshal(payload)
}

func greetingEnv(languages []string, objects []string, extensions []string) *epp.EPP {
	menu := epp.SvcMenu{
		Versions:   []string{"1.0"},
		Languages:  languages,
		ObjectURIs: objects,
	}
	if len(extensions) > 0 {
		menu.SvcExtension = &epp.SvcExtension{ExtensionURIs: extensions}
	}
	return &epp.EPP{Greeting: &epp.Greeting{
		ServerID:   "fake-registry",
		ServerDate: time.Now().UTC().Format(time.RFC3339),
		SvcMenu:    menu,
	}}
}

func resultEnv(code int, clTRID string, data *epp.ResData) *epp.EPP {
	return &epp.EPP{Response: &epp.Response{
		Results: []epp.Result{{Code: code, Message: epp.ResultMsg{Text: "result"}}},
		ResData: data,
		TrID:    epp.TrID{ClTRID: clTRID, SvTRID: "SV-1"},
	}}
}

func defaultGreeting() *epp.EPP {
	return greetingEnv([]string{"en"}, []string{epp.NSDomain, epp.NSHost, epp.NSContact}, nil)
}

// handshake greets the client and accepts its login.
func handshake(conn net.Conn, greeting *epp.EPP) (*epp.EPP, error) {
	if err := sendEnv(conn, greeting); err != nil {
		return nil, err
	}
	login, err := readEnv(conn)
	if err != nil {
		return nil, err
	}
	if err := sendEnv(conn, resultEnv(epp.CodeSuccess, login.Command.ClTRID, nil)); err != nil {
		return nil, err
	}
	return login, nil
}

// checkData answers a domain check with one available name.
func checkData(name string) *epp.ResData {
	return &epp.ResData{DomainCheck: &epp.DomainCheckData{
		Results: []epp.DomainCheckResult{{Name: epp.DomainCheckName{Available: true, Name: name}}},
	}}
}

func testConfig(dial func(ctx context.Context) (net.Conn, error)) Config {
	return Config{
		RegistryID:        "test",
		Host:              "registry.invalid:700",
		Username:          "TAG",
		Password:          "secret99",
		Pipeline:          true,
		Zones:             []string{"example"},
		KeepaliveInterval: time.Hour,
		ResponseTimeout:   500 * time.Millisecond,
		ReconnectDelay:    20 * time.Millisecond,
		dialFunc:          dial,
	}
}

func startSession(t *testing.T, cfg Config) (*Session, context.CancelFunc) {
	t.Helper()
	sess := New(cfg, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go sess.Run(ctx)
	t.Cleanup(cancel)
	return sess, cancel
}

func waitReady(t *testing.T, sess *Session) {
	t.Helper()
	require.Eventually(t, func() bool { return sess.State() == StateReady },
		2*time.Second, 5*time.Millisecond, "session never became ready")
}

// ============================================================================
// Tests
// ============================================================================

func TestSessionCheckRoundTrip(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		for {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			if env.Command != nil && env.Command.Check != nil {
				sendEnv(conn, resultEnv(epp.CodeSuccess, env.Command.ClTRID, checkData("foo.example")))
			}
		}
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	result, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.NoError(t, err)
	payload := result.Payload.(*commands.DomainCheckResponse)
	require.Len(t, payload.Results, 1)
	assert.True(t, payload.Results[0].Available)
	assert.Equal(t, "SV-1", result.Envelope.SvTRID)
}

func TestEncoderRejectionTouchesNoTransport(t *testing.T) {
	var framesAfterLogin atomic.Int64
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		for {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			framesAfterLogin.Add(1)
			if env.Command != nil && env.Command.Check != nil {
				sendEnv(conn, resultEnv(epp.CodeSuccess, env.Command.ClTRID, checkData("foo.example")))
			}
		}
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	// Fee query without an advertised fee extension: rejected before the
	// wire.
	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{
		Domains: []string{"foo.example"},
		Fee:     &commands.FeeCheckQuery{Command: "create"},
	})
	require.ErrorIs(t, err, commands.ErrUnsupported)

	// A plain check still flows; it is the only frame the server saw.
	_, err = sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, framesAfterLogin.Load())
}

func TestMidFlightDisconnectDrainsNotReady(t *testing.T) {
	var connections atomic.Int64
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		n := connections.Add(1)
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		if n == 1 {
			// Swallow one command, then drop the connection.
			readEnv(conn)
			return
		}
		for {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			if env.Command != nil && env.Command.Check != nil {
				sendEnv(conn, resultEnv(epp.CodeSuccess, env.Command.ClTRID, checkData("foo.example")))
			}
		}
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.ErrorIs(t, err, commands.ErrNotReady)

	// The session reconnects after the fixed backoff and serves again.
	waitReady(t, sess)
	_, err = sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, connections.Load(), int64(2))
}

func TestServerClosingCodeTearsDown(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		env, err := readEnv(conn)
		if err != nil {
			return
		}
		sendEnv(conn, resultEnv(epp.CodeCommandFailedClosing, env.Command.ClTRID, nil))
		// Hold the pipe open; the client side closes it.
		readEnv(conn)
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.ErrorIs(t, err, commands.ErrServerInternal)

	// 2500 moves the session toward reconnect.
	waitReady(t, sess)
}

func TestNoCommonLanguageClosesPermanently(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		sendEnv(conn, greetingEnv([]string{"fr"}, []string{epp.NSDomain}, nil))
		readEnv(conn)
	})

	sess := New(testConfig(dial), nil, nil)
	err := sess.Run(context.Background())
	require.ErrorIs(t, err, ErrNoCommonLanguage)
	assert.Equal(t, StateClosed, sess.State())

	_, err = sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	assert.ErrorIs(t, err, commands.ErrNotReady)
}

func TestLanguagePreferenceOrder(t *testing.T) {
	t.Run("PrefersPlainEn", func(t *testing.T) {
		fs, err := negotiate(greetingEnv([]string{"en-US", "en", "de"}, []string{epp.NSDomain}, nil).Greeting, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "en", fs.Language())
	})
	t.Run("FallsBackToEnUS", func(t *testing.T) {
		fs, err := negotiate(greetingEnv([]string{"de", "en-US"}, []string{epp.NSDomain}, nil).Greeting, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "en-US", fs.Language())
	})
	t.Run("VersionMismatch", func(t *testing.T) {
		g := greetingEnv([]string{"en"}, []string{epp.NSDomain}, nil).Greeting
		g.SvcMenu.Versions = []string{"0.9"}
		_, err := negotiate(g, "", nil)
		assert.ErrorIs(t, err, ErrNoCommonVersion)
	})
	t.Run("LoginObjectRestriction", func(t *testing.T) {
		g := greetingEnv([]string{"en"}, []string{epp.NSDomain, epp.NSNominetTag}, nil).Greeting
		fs, err := negotiate(g, "", []string{epp.NSNominetTag})
		require.NoError(t, err)
		assert.True(t, fs.HasObject(epp.NSNominetTag))
		assert.False(t, fs.HasObject(epp.NSDomain))
	})
}

func TestLoginNewPasswordFallback(t *testing.T) {
	var sawNewPassword atomic.Bool
	var fallbackWithout atomic.Bool
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if err := sendEnv(conn, defaultGreeting()); err != nil {
			return
		}
		first, err := readEnv(conn)
		if err != nil {
			return
		}
		sawNewPassword.Store(first.Command.Login.NewPassword != nil)
		sendEnv(conn, resultEnv(epp.CodeAuthorizationError, first.Command.ClTRID, nil))

		second, err := readEnv(conn)
		if err != nil {
			return
		}
		fallbackWithout.Store(second.Command.Login.NewPassword == nil)
		sendEnv(conn, resultEnv(epp.CodeSuccess, second.Command.ClTRID, nil))
		for {
			if _, err := readEnv(conn); err != nil {
				return
			}
		}
	})

	cfg := testConfig(dial)
	cfg.NewPassword = "rotated99"
	sess, _ := startSession(t, cfg)
	waitReady(t, sess)

	assert.True(t, sawNewPassword.Load(), "first login should offer the new password")
	assert.True(t, fallbackWithout.Load(), "fallback login should drop the new password")
}

func TestLoginNewPasswordAdoptedAcrossReconnects(t *testing.T) {
	type loginSeen struct {
		password string
		offered  bool
	}
	var conns atomic.Int64
	seen := make(chan loginSeen, 2)
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		n := conns.Add(1)
		if err := sendEnv(conn, defaultGreeting()); err != nil {
			return
		}
		login, err := readEnv(conn)
		if err != nil {
			return
		}
		seen <- loginSeen{
			password: login.Command.Login.Password,
			offered:  login.Command.Login.NewPassword != nil,
		}
		sendEnv(conn, resultEnv(epp.CodeSuccess, login.Command.ClTRID, nil))
		if n == 1 {
			// Drop the first connection right after the accepted change
			// so the session has to log in again.
			return
		}
		for {
			if _, err := readEnv(conn); err != nil {
				return
			}
		}
	})

	cfg := testConfig(dial)
	cfg.NewPassword = "rotated99"
	sess, _ := startSession(t, cfg)
	waitReady(t, sess)

	first := <-seen
	assert.Equal(t, "secret99", first.password, "first login should authenticate with the old password")
	assert.True(t, first.offered, "first login should offer the new password")

	var second loginSeen
	select {
	case second = <-seen:
	case <-time.After(2 * time.Second):
		t.Fatal("no login observed on the reconnect")
	}
	assert.Equal(t, "rotated99", second.password, "reconnect should authenticate with the rotated password")
	assert.False(t, second.offered, "reconnect should not offer the change again")
}

func TestKeepaliveHello(t *testing.T) {
	var hellos atomic.Int64
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		for {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			switch {
			case env.Hello != nil:
				hellos.Add(1)
				sendEnv(conn, defaultGreeting())
			case env.Command != nil && env.Command.Check != nil:
				sendEnv(conn, resultEnv(epp.CodeSuccess, env.Command.ClTRID, checkData("foo.example")))
			}
		}
	})

	cfg := testConfig(dial)
	cfg.KeepaliveInterval = 40 * time.Millisecond
	sess, _ := startSession(t, cfg)
	waitReady(t, sess)

	require.Eventually(t, func() bool { return hellos.Load() >= 2 },
		2*time.Second, 5*time.Millisecond, "no keepalives observed")
	require.Equal(t, StateReady, sess.State())

	// The session still serves after keepalive round trips.
	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.NoError(t, err)
}

func TestKeepaliveTimeoutReconnects(t *testing.T) {
	var connections atomic.Int64
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		connections.Add(1)
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		// Swallow hellos without answering.
		for {
			if _, err := readEnv(conn); err != nil {
				return
			}
		}
	})

	cfg := testConfig(dial)
	cfg.KeepaliveInterval = 30 * time.Millisecond
	cfg.ResponseTimeout = 50 * time.Millisecond
	sess, _ := startSession(t, cfg)
	waitReady(t, sess)

	require.Eventually(t, func() bool { return connections.Load() >= 2 },
		2*time.Second, 5*time.Millisecond, "unanswered hello should force a reconnect")
}

func TestSerialWatchdogForcesReconnect(t *testing.T) {
	var connections atomic.Int64
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		connections.Add(1)
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		// Accept commands, never reply.
		for {
			if _, err := readEnv(conn); err != nil {
				return
			}
		}
	})

	cfg := testConfig(dial)
	cfg.Pipeline = false
	cfg.ResponseTimeout = 50 * time.Millisecond
	sess, _ := startSession(t, cfg)
	waitReady(t, sess)

	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.ErrorIs(t, err, commands.ErrNotReady)
	require.Eventually(t, func() bool { return connections.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestCorrelationMissTearsDown(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		if _, err := readEnv(conn); err != nil {
			return
		}
		// Reply with a transaction id nobody asked about.
		sendEnv(conn, resultEnv(epp.CodeSuccess, "7d3b3bff-0000-4000-8000-000000000000", nil))
		readEnv(conn)
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.ErrorIs(t, err, commands.ErrNotReady)
}

func TestLogoutClosesCleanly(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		for {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			if env.Command != nil && env.Command.Logout != nil {
				sendEnv(conn, resultEnv(epp.CodeSuccessEndSession, env.Command.ClTRID, nil))
				return
			}
		}
	})

	sess := New(testConfig(dial), nil, nil)
	runErr := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { runErr <- sess.Run(ctx) }()
	waitReady(t, sess)

	require.NoError(t, sess.Logout(context.Background()))

	select {
	case err := <-runErr:
		require.NoError(t, err, "logout should end the run loop cleanly")
	case <-time.After(2 * time.Second):
		t.Fatal("run loop did not exit after logout")
	}
	assert.Equal(t, StateClosed, sess.State())
}

func TestPipelinedResponsesOutOfOrder(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		// Collect two checks, answer them in reverse order.
		var ids []string
		var names []string
		for len(ids) < 2 {
			env, err := readEnv(conn)
			if err != nil {
				return
			}
			if env.Command == nil || env.Command.Check == nil {
				continue
			}
			ids = append(ids, env.Command.ClTRID)
			names = append(names, env.Command.Check.Payload.(*epp.DomainCheck).Names[0])
		}
		sendEnv(conn, resultEnv(epp.CodeSuccess, ids[1], checkData(names[1])))
		sendEnv(conn, resultEnv(epp.CodeSuccess, ids[0], checkData(names[0])))
		readEnv(conn)
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	type answer struct {
		name string
		err  error
	}
	results := make(chan answer, 2)
	submit := func(name string) {
		res, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{name}})
		if err != nil {
			results <- answer{err: err}
			return
		}
		results <- answer{name: res.Payload.(*commands.DomainCheckResponse).Results[0].Name}
	}
	go submit("first.example")
	go submit("second.example")

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		a := <-results
		require.NoError(t, a.err)
		seen[a.name] = true
	}
	assert.True(t, seen["first.example"], "first caller should get its own answer")
	assert.True(t, seen["second.example"], "second caller should get its own answer")
}

func TestPendingReplies(t *testing.T) {
	t.Run("TakeRemoves", func(t *testing.T) {
		p := newPendingReplies()
		id := uuid.New()
		require.NoError(t, p.insert(id, waiter{op: commands.OpDomainCheck, reply: make(chan callResult, 1)}))
		_, ok := p.take(id)
		require.True(t, ok)
		_, ok = p.take(id)
		require.False(t, ok)
	})

	t.Run("InsertRejectsDuplicateID", func(t *testing.T) {
		p := newPendingReplies()
		id := uuid.New()
		first := waiter{op: commands.OpDomainCheck, reply: make(chan callResult, 1)}
		require.NoError(t, p.insert(id, first))

		err := p.insert(id, waiter{op: commands.OpDomainInfo, reply: make(chan callResult, 1)})
		require.Error(t, err)

		// The first waiter must still be the one on file.
		w, ok := p.take(id)
		require.True(t, ok)
		assert.Equal(t, commands.OpDomainCheck, w.op)
	})

	t.Run("DrainEmptiesTable", func(t *testing.T) {
		p := newPendingReplies()
		for i := 0; i < 3; i++ {
			p.insert(uuid.New(), waiter{reply: make(chan callResult, 1)})
		}
		drained := p.drain()
		assert.Len(t, drained, 3)
		assert.Zero(t, p.len())
	})

	t.Run("DeliverToAbandonedChannel", func(t *testing.T) {
		w := waiter{reply: make(chan callResult, 1)}
		w.deliver(nil, commands.NotReady())
		w.deliver(nil, commands.NotReady())
	})
}

func TestUnmarshalableResponseTearsDown(t *testing.T) {
	dial := pipeDialer(func(conn net.Conn) {
		defer conn.Close()
		if _, err := handshake(conn, defaultGreeting()); err != nil {
			return
		}
		if _, err := readEnv(conn); err != nil {
			return
		}
		// A response whose clTRID is not a UUID is a protocol error.
		sendEnv(conn, resultEnv(epp.CodeSuccess, "ABC-123", nil))
		readEnv(conn)
	})

	sess, _ := startSession(t, testConfig(dial))
	waitReady(t, sess)

	_, err := sess.Submit(context.Background(), &commands.DomainCheckRequest{Domains: []string{"foo.example"}})
	require.ErrorIs(t, err, commands.ErrNotReady)
}
