package metrics

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExporterQueryDone(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewExporter(reg)

	e.QueryDone(QueryMetrics{Sat: true, NodesVisited: 3})
	e.QueryDone(QueryMetrics{Sat: false, NodesVisited: 2, Shortcircuited: true})
	e.QueryDone(QueryMetrics{Sat: false, BudgetExceeded: true})

	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.queries.WithLabelValues("sat")), 1.0))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.queries.WithLabelValues("unsat")), 2.0))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.states), 5.0))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.shortcircuited), 1.0))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.budgetExceeded), 1.0))
}

func TestExporterCacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewExporter(reg)

	e.CacheHit()
	e.CacheHit()
	e.CacheMiss()

	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.cacheHits), 2.0))
	qt.Assert(t, qt.Equals(testutil.ToFloat64(e.cacheMisses), 1.0))
}

func TestExporterRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewExporter(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected a duplicate registration panic")
		}
	}()
	NewExporter(reg)
}
