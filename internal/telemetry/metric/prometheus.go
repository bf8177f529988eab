package metric

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "gamesdk"

// Registry holds all application metrics.
type Registry struct {
	gatherer prometheus.Gatherer

	// File server
	RequestsTotal   *prometheus.CounterVec
	BytesServed     prometheus.Counter
	RequestDuration *prometheus.HistogramVec

	// Control server
	ControlConnections prometheus.Gauge
	ControlAccepted    prometheus.Counter

	// Lifecycle
	ServerReady *prometheus.GaugeVec
}

// NewRegistry creates a registry backed by its own prometheus.Registry
// with Go and process collectors plus the application metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r := newMetrics()
	r.gatherer = reg
	reg.MustRegister(r.collectors()...)
	return r
}

// Register adds the application metrics to reg, which the caller owns
// and exposes. If reg is also a prometheus.Gatherer, Handler serves it.
// Registering twice into the same reg fails.
func Register(reg prometheus.Registerer) (*Registry, error) {
	r := newMetrics()
	if g, ok := reg.(prometheus.Gatherer); ok {
		r.gatherer = g
	}
	for _, c := range r.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return r, nil
}

func newMetrics() *Registry {
	r := &Registry{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "fileserver",
			Name:      "requests_total",
			Help:      "File server responses by status code.",
		}, []string{"code"}),
		BytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "fileserver",
			Name:      "bytes_served_total",
			Help:      "Response body bytes written by the file server.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "fileserver",
			Name:      "request_duration_seconds",
			Help:      "File server request latency.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"code"}),
		ControlConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "controlserver",
			Name:      "connections",
			Help:      "Open control server connections.",
		}),
		ControlAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "controlserver",
			Name:      "accepted_total",
			Help:      "Connections accepted by the control server.",
		}),
		ServerReady: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "server_ready",
			Help:      "1 while the named server is bound and ready.",
		}, []string{"server"}),
	}

	return r
}

func (r *Registry) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.RequestsTotal,
		r.BytesServed,
		r.RequestDuration,
		r.ControlConnections,
		r.ControlAccepted,
		r.ServerReady,
	}
}

// Handler returns the /metrics handler for r. A registry attached to a
// Registerer that cannot gather serves an empty exposition.
func (r *Registry) Handler() http.Handler {
	g := r.gatherer
	if g == nil {
		g = prometheus.Gatherers{}
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// RecordResponse records one file server response.
func (r *Registry) RecordResponse(status int, bytes int64, seconds float64) {
	if r == nil {
		return
	}
	code := strconv.Itoa(status)
	r.RequestsTotal.WithLabelValues(code).Inc()
	r.RequestDuration.WithLabelValues(code).Observe(seconds)
	if bytes > 0 {
		r.BytesServed.Add(float64(bytes))
	}
}

// ConnOpened records an accepted control connection.
func (r *Registry) ConnOpened() {
	if r == nil {
		return
	}
	r.ControlAccepted.Inc()
	r.ControlConnections.Inc()
}

// ConnClosed records a closed control connection.
func (r *Registry) ConnClosed() {
	if r == nil {
		return
	}
	r.ControlConnections.Dec()
}

// SetReady sets the readiness gauge for the named server.
func (r *Registry) SetReady(server string, ready bool) {
	if r == nil {
		return
	}
	v := 0.0
	if ready {
		v = 1
	}
	r.ServerReady.WithLabelValues(server).Set(v)
}
