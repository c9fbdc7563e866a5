package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/JaimeStill/screener/pkg/metrics"
)

type collectors struct {
	candidates         *prometheus.CounterVec
	attachmentFailures prometheus.Counter
	persistFailures    prometheus.Counter
	queueDepth         prometheus.Gauge
	tasks              *prometheus.CounterVec
}

func newCollectors(m metrics.System) *collectors {
	factory := promauto.With(m.Registerer())
	ns := m.Namespace()

	return &collectors{
		candidates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "ingest",
			Name:      "candidates_total",
			Help:      "Candidates persisted by initial status.",
		}, []string{"status"}),
		attachmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "ingest",
			Name:      "attachment_failures_total",
			Help:      "CV attachments that could not be stored.",
		}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "ingest",
			Name:      "persist_failures_total",
			Help:      "Submissions that could not be persisted.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: "ingest",
			Name:      "queue_depth",
			Help:      "Ingestion tasks waiting for a dispatcher.",
		}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "ingest",
			Name:      "tasks_total",
			Help:      "Background ingestion tasks by lifecycle event.",
		}, []string{"event"}),
	}
}
