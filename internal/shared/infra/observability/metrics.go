package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de Prometheus de la aplicación.
// Usa un registro propio (no el global) para que los tests puedan crear instancias aisladas.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestTotal       *prometheus.CounterVec
	HTTPRequestsInProgress *prometheus.GaugeVec

	DomainEventsPublished *prometheus.CounterVec
	EventHandlerFailures  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status_code", "version"}),
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status_code", "version"}),
		HTTPRequestsInProgress: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "Number of HTTP requests currently in progress",
		}, []string{"method", "route"}),
		DomainEventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_events_published_total",
			Help: "Total number of domain events published",
		}, []string{"event_name"}),
		EventHandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_event_handler_failures_total",
			Help: "Total number of failed domain event handler executions",
		}, []string{"event_name", "handler"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestDuration,
		m.HTTPRequestTotal,
		m.HTTPRequestsInProgress,
		m.DomainEventsPublished,
		m.EventHandlerFailures,
	)
	return m
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// EventPublished implementa events.Recorder.
func (m *Metrics) EventPublished(eventName string) {
	m.DomainEventsPublished.WithLabelValues(eventName).Inc()
}

// HandlerFailed implementa events.Recorder.
func (m *Metrics) HandlerFailed(eventName, handler string) {
	m.EventHandlerFailures.WithLabelValues(eventName, handler).Inc()
}
