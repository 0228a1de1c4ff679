// Package metrics holds plain-data records describing typegraph state:
// per-node and per-variable counts, per-query solver traces, and cache
// counters.
//
// Nothing here references the live graph. Records carry copied scalars
// and integer ids only, so a snapshot can be retained, diffed or
// serialized long after the analysis that produced it is gone. The
// typegraph package fills these records in; this package never imports
// it back.
package metrics

import "fmt"

// NodeMetrics is a point-in-time copy of a single CFG node's shape.
type NodeMetrics struct {
	ID                int  `json:"id"`
	IncomingEdgeCount int  `json:"incoming_edge_count"`
	OutgoingEdgeCount int  `json:"outgoing_edge_count"`
	IsCondition       bool `json:"is_condition"`
}

// VariableMetrics is a point-in-time copy of a single variable's shape:
// how many bindings it accumulated and the distinct nodes those
// bindings were introduced at.
type VariableMetrics struct {
	ID           int   `json:"id"`
	BindingCount int   `json:"binding_count"`
	NodeIDs      []int `json:"node_ids"`
}

// QueryStep is one expanded search state of a query: the node the
// solver stood at, the binding goals it still had to resolve, and the
// search depth it got there with. Steps exist for diagnostics and the
// visualization front-end.
type QueryStep struct {
	Node     int   `json:"node"`
	Bindings []int `json:"bindings"`
	Depth    int   `json:"depth"`
}

// QueryMetrics describes one logical Solve call issued by a caller. A
// large goal may be decomposed into several shortcircuiting sub-queries
// internally; all of them fold into this one record.
type QueryMetrics struct {
	// StartNode is the node the query was rooted at, EndNode the last
	// node the search expanded (equal to StartNode for queries answered
	// without search).
	StartNode int `json:"start_node"`
	EndNode   int `json:"end_node"`

	// Sat is the boolean answer of the query.
	Sat bool `json:"sat"`

	// InitialBindingCount is the goal size as given by the caller.
	//
	// TotalBindingCount accumulates every goal the query worked on
	// across all sub-queries, including source-set members pulled in as
	// nested goals. It is cumulative and NOT deduplicated: the same
	// binding reached through two paths counts twice. Deduplicating
	// would cost more than the overcount is worth.
	InitialBindingCount int `json:"initial_binding_count"`
	TotalBindingCount   int `json:"total_binding_count"`

	// NodesVisited counts distinct (node, remaining goals) states the
	// search expanded.
	NodesVisited int `json:"nodes_visited"`

	// Shortcircuited is set when sub-queries remained unevaluated
	// because an earlier one already proved the conjunction false.
	Shortcircuited bool `json:"shortcircuited"`

	// FromCache is set when the answer was served from the solver cache
	// without search.
	FromCache bool `json:"from_cache"`

	// BudgetExceeded is set when the query hit its step or time budget
	// and conservatively answered false.
	BudgetExceeded bool `json:"budget_exceeded"`

	Steps []QueryStep `json:"steps,omitempty"`
}

// CacheMetrics is a snapshot of the solver cache counters. All three
// counters only ever grow for the life of a program.
type CacheMetrics struct {
	// Size is the number of cached query signatures.
	Size int64 `json:"size"`

	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Since returns the counter deltas accumulated after start was taken.
func (c CacheMetrics) Since(start CacheMetrics) CacheMetrics {
	c.Size -= start.Size
	c.Hits -= start.Hits
	c.Misses -= start.Misses
	return c
}

func (c CacheMetrics) String() string {
	return fmt.Sprintf("cache size=%d hits=%d misses=%d", c.Size, c.Hits, c.Misses)
}

// SolverMetrics is a snapshot of one solver: the queries recorded since
// its last reset, in issue order, plus its cache counters.
type SolverMetrics struct {
	Queries []QueryMetrics `json:"queries"`
	Cache   CacheMetrics   `json:"cache"`
}

// Metrics is the top-level aggregate over a whole program.
type Metrics struct {
	BindingCount int               `json:"binding_count"`
	Nodes        []NodeMetrics     `json:"nodes"`
	Variables    []VariableMetrics `json:"variables"`
	Solvers      []SolverMetrics   `json:"solvers"`
}
