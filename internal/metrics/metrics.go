// Package metrics provides Prometheus instrumentation for remote
// backend calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RemoteCallRecorder is the instrumentation interface consumed by the
// remote client.
type RemoteCallRecorder interface {
	RecordCallSuccess(operation string)
	RecordCallFailure(operation, reason string)
	RecordCallLatency(operation string, d time.Duration)
	RecordCartAlert()
}

// Collector records remote call metrics into a Prometheus registry.
type Collector struct {
	registry    *prometheus.Registry
	callSuccess *prometheus.CounterVec
	callFail    *prometheus.CounterVec
	callLatency *prometheus.HistogramVec
	cartAlerts  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		registry: reg,
		callSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yaakai_remote_call_success_total",
			Help: "Successful remote backend calls by operation.",
		}, []string{"operation"}),
		callFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yaakai_remote_call_fail_total",
			Help: "Failed remote backend calls by operation and reason.",
		}, []string{"operation", "reason"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yaakai_remote_call_latency_seconds",
			Help:    "Remote backend call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		cartAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yaakai_cart_alerts_total",
			Help: "Blocking alerts raised by add-to-cart connectivity failures.",
		}),
	}

	reg.MustRegister(c.callSuccess, c.callFail, c.callLatency, c.cartAlerts)
	return c
}

func (c *Collector) RecordCallSuccess(operation string) {
	c.callSuccess.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordCallFailure(operation, reason string) {
	c.callFail.WithLabelValues(operation, reason).Inc()
}

func (c *Collector) RecordCallLatency(operation string, d time.Duration) {
	c.callLatency.WithLabelValues(operation).Observe(d.Seconds())
}

func (c *Collector) RecordCartAlert() {
	c.cartAlerts.Inc()
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Nop is a no-op recorder for tests and for wiring without metrics.
type Nop struct{}

func (Nop) RecordCallSuccess(string)                {}
func (Nop) RecordCallFailure(string, string)        {}
func (Nop) RecordCallLatency(string, time.Duration) {}
func (Nop) RecordCartAlert()                        {}

var _ RemoteCallRecorder = (*Collector)(nil)
var _ RemoteCallRecorder = Nop{}
