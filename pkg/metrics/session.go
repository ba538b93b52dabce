package metrics

import (
	"time"
)

// SessionMetrics provides observability for one registry session's
// lifecycle and traffic.
//
// Implementations record command latency, connection state changes,
// reconnect cycles, keepalive outcomes, and frame volume. The interface
// is optional - pass nil to disable collection with zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	m := metrics.NewSessionMetrics()
//	sess := session.New(cfg, audit, m)
//
//	// Without metrics (pass nil for zero overhead)
//	sess := session.New(cfg, audit, nil)
type SessionMetrics interface {
	// RecordCommand records one completed command with its operation
	// name, duration, and outcome ("ok", "pending", or the error kind).
	RecordCommand(registry string, op string, duration time.Duration, outcome string)

	// RecordConnectionState records a state-machine transition.
	RecordConnectionState(registry string, state string)

	// RecordReconnect counts one reconnect cycle.
	RecordReconnect(registry string)

	// RecordKeepalive records one hello round trip and whether the
	// greeting reply arrived in time.
	RecordKeepalive(registry string, ok bool)

	// RecordFrame records one frame and its payload size. Direction is
	// "sent" or "received".
	RecordFrame(registry string, direction string, bytes int)
}

// NewSessionMetrics creates a Prometheus-backed SessionMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewSessionMetrics() SessionMetrics {
	if !IsEnabled() {
		return nil
	}
	return newPrometheusSessionMetrics()
}

// newPrometheusSessionMetrics is implemented in pkg/metrics/prometheus.
// The indirection avoids an import cycle between the interface package
// and the implementation package.
var newPrometheusSessionMetrics func() SessionMetrics

// RegisterSessionMetricsConstructor registers the Prometheus session
// metrics constructor. Called by pkg/metrics/prometheus during package
// initialization.
func RegisterSessionMetricsConstructor(constructor func() SessionMetrics) {
	newPrometheusSessionMetrics = constructor
}
