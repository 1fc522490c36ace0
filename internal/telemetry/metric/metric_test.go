package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ConnectAttempt()
	m.ConnectAttempt()
	m.ConnectFailure()
	m.RequestCompleted("ok", 0.01)
	m.RequestCompleted("error", 0.02)
	m.RequestCompleted("ok", 0.03)
	m.QueueDepth(4)

	if got := testutil.ToFloat64(m.connectAttempts); got != 2 {
		t.Errorf("connect_attempts_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.connectFailures); got != 1 {
		t.Errorf("connect_failures_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("ok")); got != 2 {
		t.Errorf(`requests_total{outcome="ok"} = %v, want 2`, got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("error")); got != 1 {
		t.Errorf(`requests_total{outcome="error"} = %v, want 1`, got)
	}
	if got := testutil.ToFloat64(m.queueDepth); got != 4 {
		t.Errorf("queue_depth = %v, want 4", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	// None of these may panic.
	m.ConnectAttempt()
	m.ConnectFailure()
	m.ReconnectScheduled()
	m.Disconnect()
	m.RequestCompleted("ok", 0.1)
	m.LineRead()
	m.QueueDepth(1)
}
