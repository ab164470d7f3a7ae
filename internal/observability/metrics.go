package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the forcing engine.
type Metrics struct {
	ComputeRequests prometheus.Counter
	ComputeErrors   prometheus.Counter

	ComputeDuration prometheus.Histogram
	SeriesPoints    prometheus.Histogram

	ForcingsComputed *prometheus.CounterVec // labels: kind={rainfall,wind_speed,...}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ComputeRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forcing",
			Name:      "compute_requests_total",
			Help:      "Total forcing computation requests.",
		}),
		ComputeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forcing",
			Name:      "compute_errors_total",
			Help:      "Total forcing computation failures.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forcing",
			Name:      "compute_duration_seconds",
			Help:      "Duration of a complete multi-forcing computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		SeriesPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forcing",
			Name:      "series_points",
			Help:      "Number of grid points per computed series.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		ForcingsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forcing",
			Name:      "forcings_computed_total",
			Help:      "Computed forcings by kind.",
		}, []string{"kind"}),
	}

	prometheus.MustRegister(
		m.ComputeRequests,
		m.ComputeErrors,
		m.ComputeDuration,
		m.SeriesPoints,
		m.ForcingsComputed,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ComputeRequests:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "forcing", Name: "compute_requests_total"}),
		ComputeErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "forcing", Name: "compute_errors_total"}),
		ComputeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "forcing", Name: "compute_duration_seconds"}),
		SeriesPoints:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "forcing", Name: "series_points"}),
		ForcingsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "forcing", Name: "forcings_computed_total"}, []string{"kind"}),
	}
}
