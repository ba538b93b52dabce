package commands

import (
	"fmt"

	"github.com/registryops/eppproxy/internal/epp"
)

// Kind classifies every error the proxy surfaces to callers.
type Kind int

const (
	// KindNotReady: the session is not logged in (connecting, draining,
	// reconnecting, or closed).
	KindNotReady Kind = iota

	// KindUnsupported: the operation or a requested extension is not
	// advertised by the server.
	KindUnsupported

	// KindErr: a caller-visible protocol or validation error, including
	// server result codes in the 2000-2400 range.
	KindErr

	// KindServerInternal: the server returned a 2500-range code, or a
	// response payload did not match its command.
	KindServerInternal

	// KindTimeout: the response watchdog fired.
	KindTimeout
)

// String names the kind for logs and API problem types.
func (k Kind) String() string {
	switch k {
	case KindNotReady:
		return "not_ready"
	case KindUnsupported:
		return "unsupported"
	case KindErr:
		return "error"
	case KindServerInternal:
		return "server_internal"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the caller-facing error type. Two errors are equivalent for
// errors.Is when their kinds match, so the sentinels below work as
// comparison targets regardless of message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Comparison sentinels for errors.Is.
var (
	ErrNotReady       = &Error{Kind: KindNotReady, Message: "session not ready"}
	ErrUnsupported    = &Error{Kind: KindUnsupported, Message: "operation not supported by server"}
	ErrServerInternal = &Error{Kind: KindServerInternal, Message: "server internal error"}
	ErrTimeout        = &Error{Kind: KindTimeout, Message: "timed out waiting for response"}
)

// NotReady reports that the session cannot accept requests right now.
func NotReady() *Error {
	return &Error{Kind: KindNotReady, Message: "session not ready"}
}

// Unsupported reports a feature the server did not advertise.
func Unsupported(what string) *Error {
	return &Error{Kind: KindUnsupported, Message: fmt.Sprintf("%s not supported by server", what)}
}

// Errf builds a caller-visible validation or protocol error.
func Errf(format string, args ...any) *Error {
	return &Error{Kind: KindErr, Message: fmt.Sprintf(format, args...)}
}

// ServerInternal reports a server-side failure or a malformed response.
func ServerInternal(msg string) *Error {
	if msg == "" {
		msg = "server internal error"
	}
	return &Error{Kind: KindServerInternal, Message: msg}
}

// Timeout reports a watchdog expiry.
func Timeout(what string) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("%s timed out", what)}
}

// FromResult maps a non-success EPP result into the error taxonomy:
// 2500-2502 are server errors, everything else (2000-2400) surfaces the
// server's own message. Generic 2400 stays a caller-visible error; no
// decoder re-interprets it.
func FromResult(res epp.Result) *Error {
	if epp.IsServerError(res.Code) {
		return ServerInternal(fmt.Sprintf("server error %d: %s", res.Code, res.Message.Text))
	}
	return Errf("%s (code %d)", res.Message.Text, res.Code)
}
