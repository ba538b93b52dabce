package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registryops/eppproxy/internal/session"
)

func newSession(id string, zones ...string) *session.Session {
	return session.New(session.Config{RegistryID: id, Host: "registry.invalid:700", Zones: zones}, nil, nil)
}

func TestRegister(t *testing.T) {
	t.Run("DuplicateIDRejected", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(newSession("one", "example")))
		require.Error(t, r.Register(newSession("one", "other")))
	})

	t.Run("MissingIDRejected", func(t *testing.T) {
		r := New()
		require.Error(t, r.Register(newSession("")))
	})

	t.Run("LaterZoneRegistrationOverwrites", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Register(newSession("first", "example")))
		require.NoError(t, r.Register(newSession("second", "example")))
		_, id, ok := r.ClientByDomain("foo.example")
		require.True(t, ok)
		assert.Equal(t, "second", id)
	})
}

func TestClientByID(t *testing.T) {
	r := New()
	sess := newSession("nominet", "uk", "co.uk")
	require.NoError(t, r.Register(sess))

	got, ok := r.ClientByID("nominet")
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = r.ClientByID("unknown")
	assert.False(t, ok)
}

func TestClientByDomain(t *testing.T) {
	r := New()
	uk := newSession("nominet", "uk", "co.uk")
	eu := newSession("eurid", "eu")
	require.NoError(t, r.Register(uk))
	require.NoError(t, r.Register(eu))

	t.Run("LongestSuffixWins", func(t *testing.T) {
		sess, id, ok := r.ClientByDomain("www.example.co.uk")
		require.True(t, ok)
		assert.Same(t, uk, sess)
		assert.Equal(t, "nominet", id)
	})

	t.Run("CaseAndDotsNormalised", func(t *testing.T) {
		_, id, ok := r.ClientByDomain("Foo.Example.EU.")
		require.True(t, ok)
		assert.Equal(t, "eurid", id)
	})

	t.Run("NoMatch", func(t *testing.T) {
		_, _, ok := r.ClientByDomain("example.com")
		assert.False(t, ok)
	})

	t.Run("ExactZoneName", func(t *testing.T) {
		_, id, ok := r.ClientByDomain("co.uk")
		require.True(t, ok)
		assert.Equal(t, "nominet", id)
	})
}
