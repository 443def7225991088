package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/txrecon/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Reconciliation metrics
	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	RecordsProcessed *prometheus.CounterVec
	FailuresByRule   *prometheus.CounterVec
	LastRunFailures  prometheus.Gauge
	LastRunTimestamp prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Reconciliation metrics
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txrecon_runs_total",
				Help: "Total reconciliation runs by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "txrecon_run_duration_seconds",
			Help:    "Duration of reconciliation runs",
			Buckets: prometheus.DefBuckets,
		}),
		RecordsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txrecon_records_processed_total",
				Help: "Total records loaded by source",
			},
			[]string{"source"},
		),
		FailuresByRule: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txrecon_failures_total",
				Help: "Total reconciliation failures by rule",
			},
			[]string{"rule"},
		),
		LastRunFailures: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txrecon_last_run_failures",
			Help: "Number of failures found by the last successful run",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txrecon_last_run_timestamp_seconds",
			Help: "Unix time the last successful run finished",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txrecon_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txrecon_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txrecon_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txrecon_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"path"},
		),
	}
}

// ObserveRun records the outcome of a reconciliation run.
func (m *Metrics) ObserveRun(run *domain.ReconciliationRun, err error) {
	if err != nil {
		m.RunsTotal.WithLabelValues(errorOutcome(err)).Inc()
		return
	}

	outcome := "verified"
	if !run.Verified() {
		outcome = "failures"
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(run.Duration().Seconds())
	m.RecordsProcessed.WithLabelValues("primary").Add(float64(run.PrimaryCount))
	m.RecordsProcessed.WithLabelValues("companion").Add(float64(run.CompanionCount))

	for _, f := range run.Failures {
		m.FailuresByRule.WithLabelValues(string(f.Rule)).Inc()
	}
	m.LastRunFailures.Set(float64(len(run.Failures)))
	m.LastRunTimestamp.Set(float64(run.FinishedAt.Unix()))
}

func errorOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrFormat):
		return "format_error"
	case errors.Is(err, domain.ErrIO):
		return "io_error"
	default:
		return "error"
	}
}
