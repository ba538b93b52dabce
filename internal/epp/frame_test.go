package epp

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := []string{
		"",
		"<epp/>",
		`<?xml version="1.0"?><epp><hello/></epp>`,
		"unicode: héllo wörld éü",
		strings.Repeat("x", 64*1024),
	}
	for _, payload := range payloads {
		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, []byte(payload)))

		got, err := ReadFrame(&buf, 0)
		require.NoError(t, err)
		assert.Equal(t, payload, string(got))
	}
}

func TestFrameLengthPrefix(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("<epp><hello/></epp>")
	require.NoError(t, WriteFrame(&buf, payload))

	n := binary.BigEndian.Uint32(buf.Bytes()[:4])
	assert.Equal(t, uint32(len(payload)+4), n)
	assert.Equal(t, int(n), buf.Len())
}

func TestReadFrameRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, bytes.Repeat([]byte("a"), 1024)))

	_, err := ReadFrame(&buf, 512)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestReadFrameRejectsShortPrefix(t *testing.T) {
	// A prefix below 4 can never describe a legal frame.
	var buf bytes.Buffer
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], 3)
	buf.Write(hdr[:])

	_, err := ReadFrame(&buf, 0)
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestReadFrameTruncation(t *testing.T) {
	var full bytes.Buffer
	require.NoError(t, WriteFrame(&full, []byte("<epp><hello/></epp>")))

	t.Run("EmptyStream", func(t *testing.T) {
		_, err := ReadFrame(bytes.NewReader(nil), 0)
		assert.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("HeaderCutShort", func(t *testing.T) {
		_, err := ReadFrame(bytes.NewReader(full.Bytes()[:2]), 0)
		assert.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("BodyCutShort", func(t *testing.T) {
		_, err := ReadFrame(bytes.NewReader(full.Bytes()[:full.Len()-5]), 0)
		assert.ErrorIs(t, err, ErrShortRead)
	})
}

func TestReadFrameRejectsBadUTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte{0xff, 0xfe, 0xfd}))

	_, err := ReadFrame(&buf, 0)
	assert.ErrorIs(t, err, ErrBadUTF8)
}

// errWriter fails after a partial write, to confirm WriteFrame surfaces
// transport errors instead of silently truncating.
type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteFrameError(t *testing.T) {
	err := WriteFrame(errWriter{}, []byte("payload"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
