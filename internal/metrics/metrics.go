// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Write failure reasons.
const (
	ReasonValidation   = "validation"
	ReasonConservation = "conservation"
	ReasonStorage      = "storage"
)

// Metrics contains the HTTP and domain collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recordsWritten *prometheus.CounterVec
	writeFailures  *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	sweepChanges   *prometheus.CounterVec
	sweepDuration  prometheus.Histogram
}

// New creates the collectors and registers them, with the Go runtime
// collectors, on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.recordsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartagri_records_written_total",
			Help: "Records persisted through the write path",
		},
		[]string{"table", "operation"},
	)

	m.writeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartagri_write_failures_total",
			Help: "Writes rejected before or by the database",
		},
		[]string{"table", "reason"},
	)

	m.transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartagri_transitions_total",
			Help: "Requested state transitions by outcome",
		},
		[]string{"entity", "action", "applied"},
	)

	m.sweepChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartagri_sweep_changes_total",
			Help: "Records changed by the periodic sweep",
		},
		[]string{"kind"},
	)

	m.sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartagri_sweep_duration_seconds",
		Help:    "Time taken by a sweep run",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.recordsWritten,
		m.writeFailures,
		m.transitions,
		m.sweepChanges,
		m.sweepDuration,
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordWrite(table, operation string) {
	if m == nil {
		return
	}
	m.recordsWritten.WithLabelValues(table, operation).Inc()
}

func (m *Metrics) RecordWriteFailure(table, reason string) {
	if m == nil {
		return
	}
	m.writeFailures.WithLabelValues(table, reason).Inc()
}

func (m *Metrics) RecordTransition(entity, action string, applied bool) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(entity, action, strconv.FormatBool(applied)).Inc()
}

func (m *Metrics) RecordSweep(changes map[string]int, elapsed time.Duration) {
	if m == nil {
		return
	}
	for kind, n := range changes {
		m.sweepChanges.WithLabelValues(kind).Add(float64(n))
	}
	m.sweepDuration.Observe(elapsed.Seconds())
}
