// Package metrics exposes Prometheus instrumentation for agent dispatches and
// composed travel guides.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/travelmesh/coordinator"
	"github.com/hupe1980/travelmesh/core"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "travelmesh"

// Recorder owns a private registry so several instances can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	dispatches       *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	providerErrors   *prometheus.CounterVec
	guides           *prometheus.CounterVec
}

// Options configures a Recorder.
type Options struct {
	Namespace string
	// RuntimeCollectors adds the Go and process collectors.
	RuntimeCollectors bool
}

// New creates a Recorder and registers its collectors.
func New(optFns ...func(o *Options)) *Recorder {
	opts := Options{Namespace: DefaultNamespace}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Recorder{registry: prometheus.NewRegistry()}

	r.dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "agent_dispatches_total",
			Help:      "Messages dispatched to agents by agent and outcome",
		},
		[]string{"agent", "status"},
	)

	r.dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: opts.Namespace,
			Name:      "agent_dispatch_duration_seconds",
			Help:      "Time an agent took to answer a message",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"agent"},
	)

	r.providerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "provider_errors_total",
			Help:      "Agent replies carrying a provider error by provider and code",
		},
		[]string{"provider", "code"},
	)

	r.guides = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: opts.Namespace,
			Name:      "travel_guides_total",
			Help:      "Travel guide compositions by outcome",
		},
		[]string{"status"},
	)

	r.registry.MustRegister(r.dispatches, r.dispatchDuration, r.providerErrors, r.guides)

	if opts.RuntimeCollectors {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveDispatch records one agent round trip.
func (r *Recorder) ObserveDispatch(agent string, reply core.Message, elapsed time.Duration) {
	status := "ok"
	if reply.IsError() {
		status = "error"
		provider, _ := reply.Meta(core.MetaProvider)
		p, _ := provider.(string)
		r.providerErrors.WithLabelValues(p, reply.Err()).Inc()
	}

	r.dispatches.WithLabelValues(agent, status).Inc()
	r.dispatchDuration.WithLabelValues(agent).Observe(elapsed.Seconds())
}

// ObserveGuide records a travel guide composition. A failed composition is
// one that fell back to the general agent.
func (r *Recorder) ObserveGuide(ok bool) {
	status := "ok"
	if !ok {
		status = "fallback"
	}
	r.guides.WithLabelValues(status).Inc()
}

// Hook adapts the recorder to coordinator dispatch hooks.
func (r *Recorder) Hook() coordinator.Hook {
	return func(target string, _ core.Message, out core.Message, elapsed time.Duration) {
		r.ObserveDispatch(target, out, elapsed)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
