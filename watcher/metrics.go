package watcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the watcher.
type Metrics struct {
	Registry           *prometheus.Registry
	CyclesTotal        *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	ProductsTotal      prometheus.Counter
	NotificationsTotal *prometheus.CounterVec
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	cycles := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blinkwatch_cycles_total",
			Help: "Total watch cycles by outcome.",
		},
		[]string{"outcome"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blinkwatch_fetch_duration_seconds",
			Help:    "Page fetch latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	products := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blinkwatch_products_extracted_total",
			Help: "Total products surviving extraction and normalization.",
		},
	)
	notifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blinkwatch_notifications_total",
			Help: "Total notification attempts by kind and status.",
		},
		[]string{"kind", "status"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blinkwatch_errors_total",
			Help: "Total fetch errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(cycles, fetchDuration, products, notifications, errorsTotal)

	return &Metrics{
		Registry:           registry,
		CyclesTotal:        cycles,
		FetchDuration:      fetchDuration,
		ProductsTotal:      products,
		NotificationsTotal: notifications,
		ErrorsTotal:        errorsTotal,
	}
}

// IncCycle increments the cycles counter for an outcome.
func (m *Metrics) IncCycle(outcome string) {
	if m == nil {
		return
	}
	m.CyclesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records a page fetch duration.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// AddProducts adds to the extracted products counter.
func (m *Metrics) AddProducts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ProductsTotal.Add(float64(n))
}

// IncNotification increments the notifications counter.
func (m *Metrics) IncNotification(kind, status string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(kind, status).Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
