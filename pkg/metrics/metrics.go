package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records service metrics on its own registry.
type Collector struct {
	registry  *prometheus.Registry
	analyses  *prometheus.CounterVec
	exposures *prometheus.CounterVec
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewCollector builds a collector with Go runtime and process metrics registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uvexposure_analyses_total",
			Help: "UV analyses by outcome.",
		}, []string{"outcome"}),
		exposures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uvexposure_exposure_windows_total",
			Help: "Requested exposure windows by status.",
		}, []string{"status"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uvexposure_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uvexposure_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.analyses,
		c.exposures,
		c.requests,
		c.latency,
	)
	return c
}

// RecordAnalysis counts an analysis outcome ("ok" or an error code).
func (c *Collector) RecordAnalysis(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	c.analyses.WithLabelValues(outcome).Inc()
}

// RecordExposure counts an exposure window status.
func (c *Collector) RecordExposure(status string) {
	c.exposures.WithLabelValues(status).Inc()
}

// RecordRequest counts an HTTP request and observes its latency.
func (c *Collector) RecordRequest(route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}
