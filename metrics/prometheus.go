package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Exporter is an [Observer] translating solver events into Prometheus
// counters. It is meant for long-running services that keep answering
// type queries and want the usual scrape surface; one-shot analysis
// runs are better served by plain snapshots.
type Exporter struct {
	queries        *prometheus.CounterVec
	states         prometheus.Counter
	shortcircuited prometheus.Counter
	budgetExceeded prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

// NewExporter creates an exporter and registers its collectors with reg.
func NewExporter(reg prometheus.Registerer) *Exporter {
	e := &Exporter{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typegraph_queries_total",
				Help: "Total number of solver queries, by boolean result",
			},
			[]string{"result"},
		),
		states: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typegraph_query_states_total",
				Help: "Total number of search states expanded across all queries",
			},
		),
		shortcircuited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typegraph_queries_shortcircuited_total",
				Help: "Queries answered false before all sub-queries were evaluated",
			},
		),
		budgetExceeded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typegraph_queries_budget_exceeded_total",
				Help: "Queries that hit their step or time budget",
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typegraph_cache_hits_total",
				Help: "Solver cache hits",
			},
		),
		cacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "typegraph_cache_misses_total",
				Help: "Solver cache misses",
			},
		),
	}

	reg.MustRegister(
		e.queries,
		e.states,
		e.shortcircuited,
		e.budgetExceeded,
		e.cacheHits,
		e.cacheMisses,
	)

	return e
}

// QueryDone implements [Observer].
func (e *Exporter) QueryDone(q QueryMetrics) {
	result := "unsat"
	if q.Sat {
		result = "sat"
	}
	e.queries.WithLabelValues(result).Inc()
	e.states.Add(float64(q.NodesVisited))
	if q.Shortcircuited {
		e.shortcircuited.Inc()
	}
	if q.BudgetExceeded {
		e.budgetExceeded.Inc()
	}
}

// CacheHit implements [Observer].
func (e *Exporter) CacheHit() {
	e.cacheHits.Inc()
}

// CacheMiss implements [Observer].
func (e *Exporter) CacheMiss() {
	e.cacheMisses.Inc()
}
