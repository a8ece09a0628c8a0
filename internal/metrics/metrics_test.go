package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.FlagToggled("is_accepted", true)
		m.CascadeFailure("replies")
		m.TrustChanged("add", true)
		m.HTTPRequest("GET", "/v1/questions", 200)
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.FlagToggled("is_accepted", true)
	m.FlagToggled("is_accepted", true)
	m.FlagToggled("is_correct", false)
	m.TrustChanged("add", false)
	m.CascadeFailure("answer")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.toggles.WithLabelValues("is_accepted", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("is_correct", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.trustChanges.WithLabelValues("add", "noop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cascadeFailures.WithLabelValues("answer")))
}
