package metric

import "github.com/prometheus/client_golang/prometheus"

// namespace prefixes every metric exported by this package.
const namespace = "mpdlink"

// Metrics holds the client session metrics. A nil *Metrics is a valid
// no-op receiver for every hook, so callers never need to guard
// instrumentation sites.
type Metrics struct {
	connectAttempts prometheus.Counter
	connectFailures prometheus.Counter
	reconnects      prometheus.Counter
	disconnects     prometheus.Counter
	requests        *prometheus.CounterVec
	requestSeconds  prometheus.Histogram
	linesRead       prometheus.Counter
	queueDepth      prometheus.Gauge
}

// New creates the session metrics and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		connectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "connect_attempts_total",
			Help:      "Transport connection attempts, including reconnects",
		}),
		connectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "connect_failures_total",
			Help:      "Transport connection attempts that failed",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "reconnects_scheduled_total",
			Help:      "Reconnect attempts scheduled after a drop or failure",
		}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "disconnects_total",
			Help:      "Times an established connection was lost or torn down",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "requests_total",
			Help:      "Completed requests by outcome",
		}, []string{"outcome"}),
		requestSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "request_duration_seconds",
			Help:      "Time from request submission to completion",
			Buckets:   prometheus.DefBuckets,
		}),
		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "lines_read_total",
			Help:      "Inbound protocol lines processed",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "queue_depth",
			Help:      "Requests currently awaiting a response",
		}),
	}

	registry.MustRegister(
		m.connectAttempts,
		m.connectFailures,
		m.reconnects,
		m.disconnects,
		m.requests,
		m.requestSeconds,
		m.linesRead,
		m.queueDepth,
	)

	return m
}

// ConnectAttempt records one transport connection attempt.
func (m *Metrics) ConnectAttempt() {
	if m != nil {
		m.connectAttempts.Inc()
	}
}

// ConnectFailure records one failed connection attempt.
func (m *Metrics) ConnectFailure() {
	if m != nil {
		m.connectFailures.Inc()
	}
}

// ReconnectScheduled records one scheduled reconnect.
func (m *Metrics) ReconnectScheduled() {
	if m != nil {
		m.reconnects.Inc()
	}
}

// Disconnect records the loss or teardown of an established connection.
func (m *Metrics) Disconnect() {
	if m != nil {
		m.disconnects.Inc()
	}
}

// RequestCompleted records a finished request and its latency.
// outcome is "ok" or "error".
func (m *Metrics) RequestCompleted(outcome string, seconds float64) {
	if m != nil {
		m.requests.WithLabelValues(outcome).Inc()
		m.requestSeconds.Observe(seconds)
	}
}

// LineRead records one processed inbound line.
func (m *Metrics) LineRead() {
	if m != nil {
		m.linesRead.Inc()
	}
}

// QueueDepth updates the in-flight queue depth gauge.
func (m *Metrics) QueueDepth(n int) {
	if m != nil {
		m.queueDepth.Set(float64(n))
	}
}
