package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/JaimeStill/screener/pkg/metrics"
)

type collectors struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func newCollectors(m metrics.System) *collectors {
	factory := promauto.With(m.Registerer())

	return &collectors{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.Namespace(),
			Subsystem: "scoring",
			Name:      "requests_total",
			Help:      "Scoring calls by outcome. Failures carry their kind.",
		}, []string{"outcome", "kind"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.Namespace(),
			Subsystem: "scoring",
			Name:      "request_duration_seconds",
			Help:      "Latency of remote scoring calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
	}
}

func (c *collectors) success() {
	c.requests.WithLabelValues("success", "").Inc()
}

func (c *collectors) failure(kind Kind) {
	c.requests.WithLabelValues("failure", string(kind)).Inc()
}
