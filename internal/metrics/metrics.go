// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records per-request metrics for the HTTP surface.
type Collector struct {
	requests  *prometheus.CounterVec
	latency   prometheus.Histogram
	aiFailure prometheus.Counter
}

// NewCollector registers the platform metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gripinvest_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gripinvest_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		aiFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gripinvest_ai_fallback_total",
			Help: "Text-generation calls that fell back to the fixed string.",
		}),
	}
	reg.MustRegister(c.requests, c.latency, c.aiFailure)
	return c
}

// RecordRequest counts one handled request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.Observe(duration.Seconds())
}

// RecordAIFallback counts one degraded text-generation call.
func (c *Collector) RecordAIFallback() {
	c.aiFailure.Inc()
}

// Handler returns the scrape endpoint handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
