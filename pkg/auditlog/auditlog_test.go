package auditlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(registry string, dir Direction, data string) Entry {
	return Entry{
		Registry:  registry,
		Direction: dir,
		At:        time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Data:      []byte(data),
	}
}

func TestFactory(t *testing.T) {
	t.Run("DisabledYieldsNop", func(t *testing.T) {
		store, err := New(Config{})
		require.NoError(t, err)
		assert.IsType(t, Nop{}, store)

		store, err = New(Config{Backend: "disabled"})
		require.NoError(t, err)
		assert.IsType(t, Nop{}, store)
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		_, err := New(Config{Backend: "tape"})
		require.Error(t, err)
	})

	t.Run("FS", func(t *testing.T) {
		store, err := New(Config{Backend: "fs", FS: FSConfig{Directory: t.TempDir()}})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &FS{}, store)
	})
}

func TestFSAppend(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFS(FSConfig{Directory: dir})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, testEntry("verisign-com", DirectionSent, "<epp>hello</epp>")))
	require.NoError(t, store.Append(ctx, testEntry("verisign-com", DirectionReceived, "<epp>reply</epp>")))
	require.NoError(t, store.Append(ctx, testEntry("nominet", DirectionSent, "<epp>other</epp>")))
	require.NoError(t, store.Healthcheck(ctx))

	data, err := os.ReadFile(filepath.Join(dir, "verisign-com.log"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "sent 16\n<epp>hello</epp>\n")
	assert.Contains(t, text, "received 16\n<epp>reply</epp>\n")
	assert.NotContains(t, text, "other")

	data, err = os.ReadFile(filepath.Join(dir, "nominet.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<epp>other</epp>")
}

func TestFSSanitizesRegistryNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFS(FSConfig{Directory: dir})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(context.Background(), testEntry("../escape", DirectionSent, "x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".._escape.log", entries[0].Name())
}

func TestFSRequiresDirectory(t *testing.T) {
	_, err := NewFS(FSConfig{})
	require.Error(t, err)
}

func TestBadgerAppend(t *testing.T) {
	store, err := NewBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Healthcheck(ctx))
	require.NoError(t, store.Append(ctx, testEntry("nominet", DirectionSent, "<epp>one</epp>")))
	require.NoError(t, store.Append(ctx, testEntry("nominet", DirectionSent, "<epp>two</epp>")))
}

func TestBadgerOnDisk(t *testing.T) {
	store, err := NewBadger(BadgerConfig{Directory: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), testEntry("nominet", DirectionReceived, "<epp/>")))
	require.NoError(t, store.Close())
}

func TestSQLAppend(t *testing.T) {
	store, err := NewSQL(SQLConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "audit.db")})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Healthcheck(ctx))
	require.NoError(t, store.Append(ctx, testEntry("verisign-com", DirectionSent, "<epp>q</epp>")))
	require.NoError(t, store.Append(ctx, testEntry("verisign-com", DirectionReceived, "<epp>a</epp>")))

	var recs []auditRecord
	require.NoError(t, store.db.Order("id").Find(&recs).Error)
	require.Len(t, recs, 2)
	assert.Equal(t, "verisign-com", recs[0].Registry)
	assert.Equal(t, "sent", recs[0].Direction)
	assert.Equal(t, []byte("<epp>q</epp>"), recs[0].Data)
	assert.Equal(t, "received", recs[1].Direction)
}

func TestSQLUnknownDriver(t *testing.T) {
	_, err := NewSQL(SQLConfig{Driver: "oracle", DSN: "whatever"})
	require.Error(t, err)
}
