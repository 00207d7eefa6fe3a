// Package metrics exposes Prometheus instruments for form submissions, backend
// calls and the page server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a registry so tests and multiple servers do not collide on the
// global one.
type Metrics struct {
	registry *prometheus.Registry

	Submissions     *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	BackendStatus   *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New registers all instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "msgform_submissions_total",
				Help: "Form submissions by form and outcome",
			},
			[]string{"form", "outcome"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "msgform_backend_request_duration_seconds",
				Help:    "Backend request duration",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
			},
			[]string{"operation"},
		),
		BackendStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "msgform_backend_responses_total",
				Help: "Backend responses by operation and status; status 0 means no response",
			},
			[]string{"operation", "status"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "msgform_http_requests_total",
				Help: "Page server requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "msgform_http_request_duration_seconds",
				Help:    "Page server request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSubmission counts a finished submission.
func (m *Metrics) ObserveSubmission(form, outcome string) {
	m.Submissions.WithLabelValues(form, outcome).Inc()
}

// ObserveRequest implements client.Observer.
func (m *Metrics) ObserveRequest(operation string, status int, elapsed time.Duration) {
	m.BackendDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.BackendStatus.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// ObserveHTTP records one page server request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
