// Package metrics exposes planboard's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/planboard/pkg/infrastructure/events"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	UploadsTotal    *prometheus.CounterVec
	StockOutsTotal  prometheus.Counter
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planboard_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planboard_snapshot_uploads_total",
			Help: "Accepted snapshot uploads by kind.",
		}, []string{"kind"}),
		StockOutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planboard_stockouts_projected_total",
			Help: "Planning boards whose natural projection ran out of stock.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.UploadsTotal,
		m.StockOutsTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

var _ events.EventHandler = (*Metrics)(nil)

// EventTypes lists the events Metrics subscribes to
var EventTypes = []string{events.SnapshotReplacedEvent, events.StockOutProjectedEvent}

func (m *Metrics) CanHandle(eventType string) bool {
	return eventType == events.SnapshotReplacedEvent || eventType == events.StockOutProjectedEvent
}

func (m *Metrics) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.SnapshotReplaced:
		m.UploadsTotal.WithLabelValues(string(data.Kind)).Inc()
	case events.StockOutProjected:
		m.StockOutsTotal.Inc()
	}
	return nil
}
