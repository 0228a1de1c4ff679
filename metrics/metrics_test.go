package metrics

import (
	"encoding/json"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestCacheMetricsSince(t *testing.T) {
	start := CacheMetrics{Size: 10, Hits: 100, Misses: 40}
	now := CacheMetrics{Size: 13, Hits: 170, Misses: 41}

	delta := now.Since(start)
	qt.Assert(t, qt.Equals(delta, CacheMetrics{Size: 3, Hits: 70, Misses: 1}))

	// Since a zero start is the identity.
	qt.Assert(t, qt.Equals(now.Since(CacheMetrics{}), now))
}

func TestCacheMetricsString(t *testing.T) {
	c := CacheMetrics{Size: 2, Hits: 5, Misses: 7}
	qt.Assert(t, qt.Equals(c.String(), "cache size=2 hits=5 misses=7"))
}

func TestQueryMetricsJSON(t *testing.T) {
	q := QueryMetrics{
		StartNode:           4,
		EndNode:             1,
		Sat:                 true,
		InitialBindingCount: 2,
		TotalBindingCount:   5,
		NodesVisited:        7,
		Steps: []QueryStep{
			{Node: 4, Bindings: []int{0, 3}},
			{Node: 1, Bindings: []int{0}, Depth: 1},
		},
	}

	data, err := json.Marshal(q)
	qt.Assert(t, qt.IsNil(err))

	var back QueryMetrics
	qt.Assert(t, qt.IsNil(json.Unmarshal(data, &back)))
	qt.Assert(t, qt.DeepEquals(back, q))
}

func TestQueryMetricsStepsOmitted(t *testing.T) {
	data, err := json.Marshal(QueryMetrics{Sat: true})
	qt.Assert(t, qt.IsNil(err))

	var raw map[string]any
	qt.Assert(t, qt.IsNil(json.Unmarshal(data, &raw)))
	_, ok := raw["steps"]
	qt.Assert(t, qt.IsFalse(ok))
}
