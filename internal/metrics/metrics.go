// Package metrics keeps client-side counters for a single run and can dump
// them in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for remote calls.
const (
	OutcomeOK           = "ok"
	OutcomeFault        = "fault"
	OutcomeInvalidState = "invalid_state"
	OutcomeTransport    = "transport"
)

// Recorder owns its own registry so parallel runs (and tests) never share
// series. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	pages    prometheus.Counter
	events   *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vsphere_events_remote_calls_total",
			Help: "Remote calls issued against the vSphere API.",
		}, []string{"method", "outcome"}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vsphere_events_property_pages_total",
			Help: "Property retrieval pages received.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vsphere_events_events_reported_total",
			Help: "Events reported from the collector's latest page, by kind.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.calls, r.pages, r.events)
	return r
}

func (r *Recorder) ObserveCall(method, outcome string) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(method, outcome).Inc()
}

func (r *Recorder) ObservePage() {
	if r == nil {
		return
	}
	r.pages.Inc()
}

func (r *Recorder) ObserveEvent(kind string) {
	if r == nil {
		return
	}
	r.events.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry, e.g. for a custom Gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile atomically writes all series to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
