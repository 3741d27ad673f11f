// Package metrics exposes the two counters the lineage engine contract
// requires: a read counter and a query-latency timer for every search
// dispatched against the backing index.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		New,
	),
)

// Registry bundles the lineage search metrics behind a dedicated
// prometheus.Registerer so tests can construct an isolated instance
// instead of colliding on the global default registry.
type Registry struct {
	SearchReads prometheus.Counter
	QueryTimer  prometheus.Histogram
}

// New registers the lineage metrics against reg. Pass prometheus.DefaultRegisterer
// in production; tests should pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		SearchReads: factory.NewCounter(prometheus.CounterOpts{
			Name: "num_elasticSearch_reads",
			Help: "Number of search backend queries issued by the lineage engine.",
		}),
		QueryTimer: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "esQuery",
			Help:    "Latency of individual search backend queries issued by the lineage engine.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
