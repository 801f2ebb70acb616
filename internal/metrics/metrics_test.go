package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewMetrics(reg)
	var second *Metrics
	require.NotPanics(t, func() { second = NewMetrics(reg) })

	first.UpstreamRequestsTotal.WithLabelValues("series", "ok").Inc()
	second.UpstreamRequestsTotal.WithLabelValues("series", "ok").Inc()

	assert.Same(t, first.UpstreamRequestsTotal, second.UpstreamRequestsTotal)
	assert.Equal(t, 2.0, testutil.ToFloat64(second.UpstreamRequestsTotal.WithLabelValues("series", "ok")))
}

func TestNewMetrics_NilRegistry(t *testing.T) {
	m := NewMetrics(nil)
	m.NoDataResultsTotal.WithLabelValues("daily").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NoDataResultsTotal.WithLabelValues("daily")))
}

func TestNewMetrics_ConflictingCollectorPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tcmb_no_data_results_total",
		Help: "Total number of queries answered with a no-data result",
	}))

	assert.Panics(t, func() { NewMetrics(reg) })
}
