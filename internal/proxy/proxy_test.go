package proxy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/commands"
	"github.com/registryops/eppproxy/internal/router"
	"github.com/registryops/eppproxy/internal/session"
)

func newProxy(t *testing.T) *Proxy {
	t.Helper()
	r := router.New()
	sess := session.New(session.Config{
		RegistryID: "nominet",
		Host:       "registry.invalid:700",
		Zones:      []string{"uk", "co.uk"},
	}, nil, nil)
	require.NoError(t, r.Register(sess))
	return New(r, nil)
}

func TestCallRouting(t *testing.T) {
	p := newProxy(t)
	check := &commands.DomainCheckRequest{Domains: []string{"foo.co.uk"}}

	t.Run("ByID", func(t *testing.T) {
		// The session is not running, so routing succeeds and the
		// submission is rejected as not ready.
		_, err := p.Call(context.Background(), Selector{RegistryID: "nominet"}, check)
		assert.ErrorIs(t, err, commands.ErrNotReady)
	})

	t.Run("ByDomain", func(t *testing.T) {
		_, err := p.Call(context.Background(), Selector{Domain: "foo.co.uk"}, check)
		assert.ErrorIs(t, err, commands.ErrNotReady)
	})

	t.Run("UnknownRegistry", func(t *testing.T) {
		_, err := p.Call(context.Background(), Selector{RegistryID: "nope"}, check)
		require.Error(t, err)
		assert.NotErrorIs(t, err, commands.ErrNotReady)
	})

	t.Run("UnroutableDomain", func(t *testing.T) {
		_, err := p.Call(context.Background(), Selector{Domain: "foo.com"}, check)
		require.Error(t, err)
	})

	t.Run("EmptySelector", func(t *testing.T) {
		_, err := p.Call(context.Background(), Selector{}, check)
		require.Error(t, err)
	})

	t.Run("DACWithoutEndpoints", func(t *testing.T) {
		_, err := p.Call(context.Background(), Selector{RegistryID: "nominet"},
			&commands.DACDomainRequest{Domain: "foo.co.uk"})
		assert.ErrorIs(t, err, commands.ErrUnsupported)
	})
}

func TestStatus(t *testing.T) {
	p := newProxy(t)

	st, err := p.Status("nominet")
	require.NoError(t, err)
	assert.Equal(t, "nominet", st.ID)
	assert.Equal(t, "disconnected", st.State)
	assert.Contains(t, st.Zones, "co.uk")

	_, err = p.Status("missing")
	require.Error(t, err)

	all := p.StatusAll()
	require.Len(t, all, 1)
	assert.Equal(t, "nominet", all[0].ID)
}
