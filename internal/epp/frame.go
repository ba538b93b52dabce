// Package epp implements the EPP (RFC 5730) wire format: length-prefixed
// framing over a TLS byte stream and the XML message schemas for the
// envelope, the core object mappings (domain, host, contact), and the
// extension families the proxy negotiates per registry.
package epp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Frame errors. ErrShortRead wraps stream truncation, ErrBadLength covers
// out-of-range length prefixes, ErrBadUTF8 flags non-UTF-8 payloads. All
// three tear the connection down; there is no way to resynchronise a
// length-prefixed stream after a bad frame.
var (
	ErrShortRead = errors.New("short read on epp stream")
	ErrBadLength = errors.New("bad epp frame length")
	ErrBadUTF8   = errors.New("epp frame is not valid utf-8")
)

const (
	// frameHeaderSize is the 4-byte big-endian length prefix. The prefix
	// counts itself, so a frame carrying N payload bytes declares N+4.
	frameHeaderSize = 4

	// DefaultMaxFrame bounds incoming frames. 1 MiB covers any realistic
	// EPP message; anything larger fails fast instead of tying up the
	// receive loop.
	DefaultMaxFrame = 1 << 20
)

// ReadFrame reads one EPP data unit: a 4-byte big-endian length prefix
// (which includes the prefix itself) followed by the UTF-8 XML payload.
// maxLen caps the declared frame length; zero selects DefaultMaxFrame.
// ReadFrame is strictly sequential and must only be called from the one
// goroutine owning the read half of the stream.
func ReadFrame(r io.Reader, maxLen uint32) ([]byte, error) {
	if maxLen == 0 {
		maxLen = DefaultMaxFrame
	}

	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, readErr("frame header", err)
	}

	n := binary.BigEndian.Uint32(hdr[:])
	if n < frameHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes (minimum %d)", ErrBadLength, n, frameHeaderSize)
	}
	if n > maxLen {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrBadLength, n, maxLen)
	}

	body := make([]byte, n-frameHeaderSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, readErr("frame body", err)
	}

	if !utf8.Valid(body) {
		return nil, ErrBadUTF8
	}
	return body, nil
}

// WriteFrame writes one EPP data unit: the inclusive length prefix followed
// by the payload, in a single Write so a frame never interleaves with a
// concurrent writer's bytes.
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32-frameHeaderSize {
		return fmt.Errorf("%w: payload of %d bytes does not fit a 32-bit frame", ErrBadLength, len(payload))
	}

	frame := make([]byte, frameHeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame[:frameHeaderSize], uint32(len(payload)+frameHeaderSize))
	copy(frame[frameHeaderSize:], payload)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readErr classifies stream truncation as ErrShortRead and passes other
// transport errors (timeouts, resets) through for the caller to wrap.
func readErr(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %v", ErrShortRead, what, err)
	}
	return fmt.Errorf("read %s: %w", what, err)
}
