// Package prometheus holds the Prometheus-backed implementations of the
// metrics interfaces. Importing it registers the constructors with the
// parent package; callers keep depending on pkg/metrics only.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/registryops/eppproxy/pkg/metrics"
)

func init() {
	metrics.RegisterSessionMetricsConstructor(newSessionMetrics)
}

// sessionMetrics is the Prometheus implementation of
// metrics.SessionMetrics.
type sessionMetrics struct {
	commandDuration *prometheus.HistogramVec
	commands        *prometheus.CounterVec
	connectionState *prometheus.GaugeVec
	reconnects      *prometheus.CounterVec
	keepalives      *prometheus.CounterVec
	frames          *prometheus.CounterVec
	frameBytes      *prometheus.CounterVec
}

func newSessionMetrics() metrics.SessionMetrics {
	reg := metrics.GetRegistry()

	return &sessionMetrics{
		commandDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "eppproxy_command_duration_seconds",
				Help: "Round-trip duration of registry commands",
				Buckets: []float64{
					0.05, // fast registries
					0.1,
					0.25,
					0.5,
					1,
					2.5,
					5,
					15, // response watchdog limit
				},
			},
			[]string{"registry", "op"},
		),
		commands: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eppproxy_commands_total",
				Help: "Completed registry commands by operation and outcome",
			},
			[]string{"registry", "op", "outcome"},
		),
		connectionState: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "eppproxy_connection_state",
				Help: "Current session state, one gauge per state with the active state set to 1",
			},
			[]string{"registry", "state"},
		),
		reconnects: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eppproxy_reconnects_total",
				Help: "Reconnect cycles per registry",
			},
			[]string{"registry"},
		),
		keepalives: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eppproxy_keepalives_total",
				Help: "Keepalive hello round trips by result",
			},
			[]string{"registry", "result"}, // "ok", "timeout"
		),
		frames: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eppproxy_frames_total",
				Help: "Frames exchanged with the registry by direction",
			},
			[]string{"registry", "direction"},
		),
		frameBytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "eppproxy_frame_bytes_total",
				Help: "Frame payload bytes exchanged with the registry by direction",
			},
			[]string{"registry", "direction"},
		),
	}
}

// knownStates drives the one-hot connection state gauge.
var knownStates = []string{
	"disconnected", "connecting", "greeting", "login_pending",
	"ready", "draining", "closed",
}

func (m *sessionMetrics) RecordCommand(registry, op string, duration time.Duration, outcome string) {
	m.commandDuration.WithLabelValues(registry, op).Observe(duration.Seconds())
	m.commands.WithLabelValues(registry, op, outcome).Inc()
}

func (m *sessionMetrics) RecordConnectionState(registry, state string) {
	for _, s := range knownStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		m.connectionState.WithLabelValues(registry, s).Set(value)
	}
}

func (m *sessionMetrics) RecordReconnect(registry string) {
	m.reconnects.WithLabelValues(registry).Inc()
}

func (m *sessionMetrics) RecordKeepalive(registry string, ok bool) {
	result := "timeout"
	if ok {
		result = "ok"
	}
	m.keepalives.WithLabelValues(registry, result).Inc()
}

func (m *sessionMetrics) RecordFrame(registry, direction string, bytes int) {
	m.frames.WithLabelValues(registry, direction).Inc()
	m.frameBytes.WithLabelValues(registry, direction).Add(float64(bytes))
}
