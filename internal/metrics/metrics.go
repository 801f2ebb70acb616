package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	NoDataResultsTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Collectors already registered
// there by an earlier call are reused, so several clients may share one
// registerer. A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		)),

		HTTPRequestDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		)),

		UpstreamRequestsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tcmb_upstream_requests_total",
				Help: "Total number of requests sent to TCMB endpoints",
			},
			[]string{"endpoint", "outcome"},
		)),

		UpstreamRequestDuration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tcmb_upstream_request_duration_seconds",
				Help:    "TCMB request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		)),

		NoDataResultsTotal: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tcmb_no_data_results_total",
				Help: "Total number of queries answered with a no-data result",
			},
			[]string{"operation"},
		)),
	}
}

// register panics only when reg holds an incompatible collector of the same
// name, which is a programming error.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}
