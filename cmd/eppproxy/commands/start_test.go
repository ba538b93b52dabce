package commands

import (
	"context"
	"testing"
	"time"

	"github.com/registryops/eppproxy/internal/session"
)

func TestLogoutSessionsSkipsUnreadySessions(t *testing.T) {
	sessions := []*session.Session{
		session.New(session.Config{RegistryID: "a", Host: "a.invalid:700"}, nil, nil),
		session.New(session.Config{RegistryID: "b", Host: "b.invalid:700"}, nil, nil),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		logoutSessions(ctx, sessions)
		close(done)
	}()

	// Nothing is connected, so there is no one to log out of and the
	// call must return without waiting on any session.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logoutSessions blocked on sessions that were never ready")
	}
}
