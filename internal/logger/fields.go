package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so sessions,
// commands, and audit records can be correlated in log aggregation.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Registry & Session
	// ========================================================================
	KeyRegistry = "registry" // Registry session id (verisign-com, nominet, ...)
	KeyEndpoint = "endpoint" // Registry host:port
	KeyState    = "state"    // Session state (connecting, ready, draining, ...)
	KeyZone     = "zone"     // DNS zone routed on (com, co.uk, ...)
	KeyAttempt  = "attempt"  // Reconnect attempt number

	// ========================================================================
	// Command & Transaction
	// ========================================================================
	KeyCommand       = "command"     // Command kind: domain-create, host-check, ...
	KeyTransactionID = "txid"        // Client transaction id (clTRID)
	KeyServerTxID    = "svtrid"      // Server transaction id (svTRID)
	KeyObject        = "object"      // Object acted on: domain/host/contact name
	KeyResultCode    = "result_code" // EPP result code (1000-2502)
	KeyResultMsg     = "result_msg"  // Human-readable result message
	KeyPending       = "pending"     // Action queued for offline review (code 1001)
	KeyExtension     = "extension"   // Extension URI involved in the command

	// ========================================================================
	// Wire & Queueing
	// ========================================================================
	KeyFrameLen   = "frame_len"   // Wire frame length including the 4-byte header
	KeyDirection  = "direction"   // Traffic direction: sent, received
	KeyQueueDepth = "queue_depth" // Inbound queue depth at enqueue time
	KeyMsgID      = "msg_id"      // Poll message id
	KeyMsgCount   = "msg_count"   // Poll messages remaining on the server

	// ========================================================================
	// Caller Identification
	// ========================================================================
	KeyClientIP = "client_ip" // Caller IP address
	KeyUsername = "username"  // API username
	KeyUserID   = "user_id"   // API user id

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyOperation  = "operation"   // Sub-operation for multi-step flows
	KeyReason     = "reason"      // Why a state change or teardown happened

	// ========================================================================
	// Audit Sinks
	// ========================================================================
	KeyBackend = "backend" // Audit sink backend: fs, badger, s3, sql
	KeyBucket  = "bucket"  // S3 bucket name
	KeyKey     = "key"     // S3 object key or badger key
	KeyPort    = "port"    // Listen port for servers
)

// ============================================================================
// Typed attribute constructors
// ============================================================================

// TraceID creates a trace ID attribute
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID creates a span ID attribute
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Registry creates a registry session id attribute
func Registry(id string) slog.Attr {
	return slog.String(KeyRegistry, id)
}

// Endpoint creates a registry endpoint attribute
func Endpoint(hostPort string) slog.Attr {
	return slog.String(KeyEndpoint, hostPort)
}

// State creates a session state attribute
func State(state string) slog.Attr {
	return slog.String(KeyState, state)
}

// Zone creates a routed-zone attribute
func Zone(zone string) slog.Attr {
	return slog.String(KeyZone, zone)
}

// Attempt creates a reconnect attempt attribute
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// Command creates a command kind attribute
func Command(kind string) slog.Attr {
	return slog.String(KeyCommand, kind)
}

// TransactionID creates a client transaction id attribute
func TransactionID(txid string) slog.Attr {
	return slog.String(KeyTransactionID, txid)
}

// ServerTxID creates a server transaction id attribute
func ServerTxID(svtrid string) slog.Attr {
	return slog.String(KeyServerTxID, svtrid)
}

// Object creates an attribute for the object a command acts on
func Object(name string) slog.Attr {
	return slog.String(KeyObject, name)
}

// ResultCode creates an EPP result code attribute
func ResultCode(code int) slog.Attr {
	return slog.Int(KeyResultCode, code)
}

// ResultMsg creates a result message attribute
func ResultMsg(msg string) slog.Attr {
	return slog.String(KeyResultMsg, msg)
}

// FrameLen creates a wire frame length attribute
func FrameLen(n uint32) slog.Attr {
	return slog.Uint64(KeyFrameLen, uint64(n))
}

// Direction creates a traffic direction attribute
func Direction(dir string) slog.Attr {
	return slog.String(KeyDirection, dir)
}

// QueueDepth creates an inbound queue depth attribute
func QueueDepth(n int) slog.Attr {
	return slog.Int(KeyQueueDepth, n)
}

// MsgID creates a poll message id attribute
func MsgID(id string) slog.Attr {
	return slog.String(KeyMsgID, id)
}

// ClientIP creates a caller IP attribute
func ClientIP(ip string) slog.Attr {
	return slog.String(KeyClientIP, ip)
}

// Username creates an API username attribute
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// DurationMs creates a duration attribute in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err creates an error attribute, tolerating nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Operation creates a sub-operation attribute
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Reason creates a reason attribute for state changes and teardowns
func Reason(reason string) slog.Attr {
	return slog.String(KeyReason, reason)
}

// Backend creates an audit sink backend attribute
func Backend(name string) slog.Attr {
	return slog.String(KeyBackend, name)
}

// Bucket creates an S3 bucket attribute
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key creates an object key attribute
func Key(key string) slog.Attr {
	return slog.String(KeyKey, key)
}

// Any creates an attribute with any value, stringified for stable output
func Any(key string, value any) slog.Attr {
	return slog.String(key, fmt.Sprintf("%v", value))
}
