package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors published by the service.
type Metrics struct {
	registry *prometheus.Registry

	requestLatency *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec

	RegistrationsTotal     prometheus.Counter
	LoginsTotal            prometheus.Counter
	LoginFailuresTotal     prometheus.Counter
	ComplaintsSubmitted    prometheus.Counter
	ComplaintStatusUpdates *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_errors_total",
				Help: "Total HTTP requests translated to error responses.",
			},
			[]string{"route", "method", "code"},
		),
		RegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total successful registrations.",
		}),
		LoginsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total successful logins.",
		}),
		LoginFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total failed login attempts.",
		}),
		ComplaintsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaints_submitted_total",
			Help: "Total complaints submitted.",
		}),
		ComplaintStatusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "complaint_status_updates_total",
				Help: "Total complaint status updates.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.requestLatency,
		m.errorsTotal,
		m.RegistrationsTotal,
		m.LoginsTotal,
		m.LoginFailuresTotal,
		m.ComplaintsSubmitted,
		m.ComplaintStatusUpdates,
	)
	return m
}

// ObserveRequest records request latency.
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(duration.Seconds())
}

// RecordError increments the error counter for a translated domain error.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(route, method, code).Inc()
}

// HTTPHandler returns the exposition handler for the /metrics route.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
