// Package metrics owns the Prometheus registry shared by domain collectors
// and exposes it over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// System provides the registry domain packages register their collectors with.
type System interface {
	// Registerer returns the registry collectors should be registered on.
	Registerer() prometheus.Registerer
	// Gatherer returns the same registry for reading collected values.
	Gatherer() prometheus.Gatherer
	// Namespace returns the metric name prefix.
	Namespace() string
	// Handler serves the registry in the Prometheus exposition format.
	Handler() http.Handler
}

type registry struct {
	reg       *prometheus.Registry
	namespace string
}

// New creates a metrics system with its own registry, pre-loaded with
// Go runtime and process collectors.
func New(cfg *Config) System {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &registry{
		reg:       reg,
		namespace: cfg.Namespace,
	}
}

// NewNop creates a metrics system backed by a bare registry, for tests and tools.
func NewNop() System {
	return &registry{
		reg:       prometheus.NewRegistry(),
		namespace: "test",
	}
}

func (r *registry) Registerer() prometheus.Registerer {
	return r.reg
}

func (r *registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *registry) Namespace() string {
	return r.namespace
}

func (r *registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
