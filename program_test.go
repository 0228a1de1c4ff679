package typegraph

import (
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/typegraph/metrics"
)

func TestCalculateMetrics(t *testing.T) {
	p, nodes, x1, _ := diamond(t)

	s := NewSolver(p, DefaultConfig())
	s.Solve(nodes[3].ID(), []*Binding{x1})
	s.Solve(nodes[3].ID(), []*Binding{x1})

	m := p.CalculateMetrics()

	if m.BindingCount != 2 {
		t.Errorf("expected 2 bindings, got %d", m.BindingCount)
	}

	wantNodes := []metrics.NodeMetrics{
		{ID: 0, OutgoingEdgeCount: 2, IsCondition: true},
		{ID: 1, IncomingEdgeCount: 1, OutgoingEdgeCount: 1},
		{ID: 2, IncomingEdgeCount: 1, OutgoingEdgeCount: 1},
		{ID: 3, IncomingEdgeCount: 2},
	}
	deepequal.SideBySide(t, "node metrics", wantNodes, m.Nodes)

	wantVariables := []metrics.VariableMetrics{
		{ID: 0, BindingCount: 2, NodeIDs: []int{1, 2}},
	}
	deepequal.SideBySide(t, "variable metrics", wantVariables, m.Variables)

	if len(m.Solvers) != 1 {
		t.Fatalf("expected 1 solver record, got %d", len(m.Solvers))
	}
	sm := m.Solvers[0]
	if len(sm.Queries) != 2 {
		t.Fatalf("expected 2 recorded queries, got %d", len(sm.Queries))
	}
	if sm.Cache.Hits != 1 || sm.Cache.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %s", sm.Cache)
	}
	if sm.Cache.Size == 0 {
		t.Error("cache size did not move")
	}
}

// TestMetricsOutliveProgram checks the snapshot holds no live graph
// state: mutating the program afterwards must not show up in an
// already taken record.
func TestMetricsOutliveProgram(t *testing.T) {
	p, nodes, x1, _ := diamond(t)

	m := p.CalculateMetrics()
	before := m.Nodes[3].IncomingEdgeCount

	p.Connect(nodes[0].ID(), nodes[3].ID())
	x1.Variable().NewBinding(3, nodes[0].ID())

	if m.Nodes[3].IncomingEdgeCount != before {
		t.Error("snapshot changed together with the live graph")
	}
	if m.BindingCount != 2 {
		t.Errorf("snapshot binding count changed, got %d", m.BindingCount)
	}
}

func TestSolverResetMetrics(t *testing.T) {
	p, nodes, x1, _ := diamond(t)
	s := NewSolver(p, DefaultConfig())

	s.Solve(nodes[3].ID(), []*Binding{x1})
	s.ResetMetrics()
	s.Solve(nodes[3].ID(), []*Binding{x1})

	sm := s.Metrics()
	if len(sm.Queries) != 1 {
		t.Fatalf("expected 1 query after reset, got %d", len(sm.Queries))
	}
	if !sm.Queries[0].FromCache {
		t.Error("the answer was computed before the reset, expected a cache hit")
	}
	if sm.Cache.Hits != 1 || sm.Cache.Misses != 1 {
		t.Errorf("cache counters must survive the reset, got %s", sm.Cache)
	}
}
