// Package reach maintains forward reachability over an append-only
// directed graph of dense integer node ids.
//
// The solver consults it to prune hopeless goals: a binding whose every
// origin sits at a node that cannot reach the query position can never
// be resolved from there, whatever the justification data says.
//
// The closure is kept incrementally: nodes and edges are only ever
// added, so reachable sets only ever grow and each edge insert is a
// bounded union propagation, no recomputation from scratch.
package reach

import "golang.org/x/tools/container/intsets"

// Analyzer answers "is there a path from a to b" for a growing graph.
type Analyzer struct {
	// fwd[i] holds every node reachable from i, including i itself.
	fwd   []*intsets.Sparse
	preds [][]int
}

// New is [Analyzer] constructor.
func New() *Analyzer {
	return &Analyzer{}
}

// AddNode registers the next node and returns its id. Ids are dense and
// start from zero, mirroring the arena they shadow.
func (a *Analyzer) AddNode() int {
	id := len(a.fwd)
	row := &intsets.Sparse{}
	row.Insert(id)
	a.fwd = append(a.fwd, row)
	a.preds = append(a.preds, nil)
	return id
}

// AddEdge records a directed edge and propagates the enlarged
// reachable set to every node that can reach the edge's tail. Adding a
// known edge is a harmless no-op.
func (a *Analyzer) AddEdge(from, to int) {
	a.preds[to] = append(a.preds[to], from)
	if !a.fwd[from].UnionWith(a.fwd[to]) {
		return
	}

	// Union propagation up the predecessor chains. Terminates because
	// every union either grows a set or stops the walk, and sets are
	// bounded by the node count.
	worklist := []int{from}
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, p := range a.preds[n] {
			if a.fwd[p].UnionWith(a.fwd[n]) {
				worklist = append(worklist, p)
			}
		}
	}
}

// Reachable reports whether there is a directed path from a to b.
// Every node reaches itself.
func (a *Analyzer) Reachable(from, to int) bool {
	return a.fwd[from].Has(to)
}

// Len returns the number of registered nodes.
func (a *Analyzer) Len() int {
	return len(a.fwd)
}
