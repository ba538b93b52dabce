package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds request-scoped logging context that flows with a
// proxied command from the caller-facing API down to the registry session.
type LogContext struct {
	TraceID       string    // OpenTelemetry trace ID
	SpanID        string    // OpenTelemetry span ID
	Registry      string    // Registry session id (verisign-com, nominet, ...)
	Command       string    // Command kind (domain-create, host-check, ...)
	TransactionID string    // Client transaction id (clTRID)
	ClientIP      string    // Caller IP address (without port)
	StartTime     time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext with the given caller IP
func NewLogContext(clientIP string) *LogContext {
	return &LogContext{
		ClientIP:  clientIP,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:       lc.TraceID,
		SpanID:        lc.SpanID,
		Registry:      lc.Registry,
		Command:       lc.Command,
		TransactionID: lc.TransactionID,
		ClientIP:      lc.ClientIP,
		StartTime:     lc.StartTime,
	}
}

// WithRegistry returns a copy with the registry set
func (lc *LogContext) WithRegistry(registry string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Registry = registry
	}
	return clone
}

// WithCommand returns a copy with the command kind set
func (lc *LogContext) WithCommand(command string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Command = command
	}
	return clone
}

// WithTransaction returns a copy with the client transaction id set
func (lc *LogContext) WithTransaction(txid string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TransactionID = txid
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
