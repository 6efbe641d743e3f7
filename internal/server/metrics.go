package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instrumentation of the HTTP server.
// Each instance carries its own registry so that multiple servers (and
// tests) never collide on metric registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   prometheus.Counter
	requestDuration *prometheus.HistogramVec
	computations    *prometheus.CounterVec
}

// NewMetrics creates and registers the server metrics together with the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "numcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "numcalc_requests_total",
			Help: "Total number of HTTP requests received.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "numcalc_request_duration_seconds",
			Help:    "HTTP request latency by path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "numcalc_computations_total",
			Help: "Completed computations by operation, backend and status.",
		}, []string{"operation", "backend", "status"}),
	}

	registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.requestDuration,
		m.computations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests records the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests records the completion of an HTTP request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records the latency of one request to the given path.
func (m *Metrics) ObserveRequest(path string, duration time.Duration) {
	m.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// CountComputation records the outcome of one backend computation.
func (m *Metrics) CountComputation(operation, backend, status string) {
	m.computations.WithLabelValues(operation, backend, status).Inc()
}

// WritePrometheus serves the metrics in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// metricsMiddleware tracks active request count and request latency
// around the next handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		next(w, r)
		s.metrics.ObserveRequest(r.URL.Path, time.Since(start))
	}
}
