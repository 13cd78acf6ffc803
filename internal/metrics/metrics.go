package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one process on a private registry.
// All methods are no-ops on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	ShapesCollected     prometheus.Gauge
	ExportsResolved     prometheus.Gauge
	FetchAttemptsTotal  *prometheus.CounterVec
	FetchDuration       prometheus.Histogram
	ShapesTotal         *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ShapesCollected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cragmap_shapes_collected",
			Help: "Vector shapes collected from the crag container in the last run.",
		}),
		ExportsResolved: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cragmap_exports_resolved",
			Help: "Shapes that received an SVG export URL in the last run.",
		}),
		FetchAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cragmap_svg_fetch_attempts_total",
				Help: "SVG download attempts by outcome.",
			},
			[]string{"outcome"}, // success, transient, fatal
		),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cragmap_svg_fetch_duration_seconds",
			Help:    "Duration of single SVG download attempts.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		ShapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cragmap_shapes_total",
				Help: "Shapes by terminal fetch state.",
			},
			[]string{"state"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (m *Metrics) SetCollected(n int) {
	if m == nil {
		return
	}
	m.ShapesCollected.Set(float64(n))
}

func (m *Metrics) SetResolved(n int) {
	if m == nil {
		return
	}
	m.ExportsResolved.Set(float64(n))
}

// ObserveAttempt records one download attempt.
func (m *Metrics) ObserveAttempt(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchAttemptsTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// ObserveShape records a shape reaching its terminal state.
func (m *Metrics) ObserveShape(state string) {
	if m == nil {
		return
	}
	m.ShapesTotal.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
