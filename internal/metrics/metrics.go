// Package metrics holds the prometheus collectors for the discussion board.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trustboard"

type Metrics struct {
	toggles         *prometheus.CounterVec
	cascadeFailures *prometheus.CounterVec
	trustChanges    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answer_flag_toggles_total",
			Help:      "Answer flag toggles by flag and resulting value.",
		}, []string{"flag", "value"}),
		cascadeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_delete_failures_total",
			Help:      "Child deletions skipped during a question cascade.",
		}, []string{"stage"}),
		trustChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trust_changes_total",
			Help:      "Trust graph mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.toggles, m.cascadeFailures, m.trustChanges, m.httpRequests)
	return m
}

func (m *Metrics) FlagToggled(flag string, value bool) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(flag, strconv.FormatBool(value)).Inc()
}

func (m *Metrics) CascadeFailure(stage string) {
	if m == nil {
		return
	}
	m.cascadeFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) TrustChanged(op string, applied bool) {
	if m == nil {
		return
	}
	outcome := "noop"
	if applied {
		outcome = "applied"
	}
	m.trustChanges.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
