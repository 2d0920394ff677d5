// Package metrics exports runner events as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/runloop/pkg/runloop"
)

const namespace = "runloop"

// Session results used as the "result" label.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Collector is a runloop.EventHandler that records sessions and state
// changes on its own registry.
type Collector struct {
	registry *prometheus.Registry

	sessions        *prometheus.CounterVec
	sessionDuration prometheus.Histogram
	errorsReported  prometheus.Counter
	outerIterations prometheus.Counter
	events          prometheus.Counter
	hooks           *prometheus.CounterVec
	state           prometheus.Gauge
}

// NewCollector creates a Collector with its metrics registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		sessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Processing sessions by result",
		}, []string{"result"}),
		sessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Wall time of a processing session",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
		}),
		errorsReported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_reported_total",
			Help:      "Errors reported to the lifecycle target",
		}),
		outerIterations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outer_iterations_total",
			Help:      "Outer processing loop iterations",
		}),
		events: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events processed",
		}),
		hooks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_invocations_total",
			Help:      "Lifecycle hook invocations by hook",
		}, []string{"hook"}),
		state: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "state",
			Help:      "Current runner state (0 stopped, 1 starting, 2 running, 3 stopping, 4 crashed)",
		}),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// OnStateChange implements runloop.EventHandler.
func (c *Collector) OnStateChange(event runloop.StateChangeEvent) {
	c.state.Set(float64(event.Current))
}

// OnSessionComplete implements runloop.EventHandler.
func (c *Collector) OnSessionComplete(event runloop.SessionEvent) {
	result := ResultOK
	if event.Err != nil {
		result = ResultFailed
	}
	c.sessions.WithLabelValues(result).Inc()

	rep := event.Report
	if rep.IsEmpty() {
		return
	}
	c.sessionDuration.Observe(rep.Duration().Seconds())
	c.errorsReported.Add(float64(rep.ErrorsReported))
	c.outerIterations.Add(float64(rep.OuterIterations))
	c.events.Add(float64(rep.Events))
	for hook, n := range rep.Hooks {
		c.hooks.WithLabelValues(hook).Add(float64(n))
	}
}

var _ runloop.EventHandler = (*Collector)(nil)
