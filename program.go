package typegraph

import (
	"fmt"

	"github.com/sirkon/typegraph/metrics"
)

// Program is the arena owning every CFG node, variable and binding of a
// single analysis run. All cross references between entities are ids
// into this arena.
//
// A Program is built by exactly one goroutine, interleaved with Solve
// calls from that same goroutine. See the package documentation for the
// concurrency model.
type Program struct {
	nodes     []*CFGNode
	variables []*Variable
	bindings  []*Binding

	// topoEdition counts topology changes (nodes and edges),
	// factEdition counts justification changes (origins). Solvers use
	// them to know when their reachability shadows and memoized
	// answers went stale: both kinds of additions can turn an earlier
	// false into true.
	topoEdition uint64
	factEdition uint64

	solvers []*Solver

	// defaultSolver backs Program.Solve. Created on first use.
	defaultSolver *Solver
}

// NewProgram is [Program] constructor.
func NewProgram() *Program {
	return &Program{}
}

// NewNode creates a fresh node with no edges and no display name.
func (p *Program) NewNode() *CFGNode {
	return p.NewNamedNode("")
}

// NewNamedNode creates a fresh node with no edges. The name only shows
// up in snapshot documents, it plays no role in solving.
func (p *Program) NewNamedNode(name string) *CFGNode {
	n := &CFGNode{
		program: p,
		id:      NodeID(len(p.nodes)),
		name:    name,
	}
	p.nodes = append(p.nodes, n)
	p.topoEdition++
	return n
}

// Connect adds a directed edge from one node to another. Adding an edge
// that already exists is a no-op. Connect never fails on valid ids.
func (p *Program) Connect(from, to NodeID) {
	src := p.node(from)
	dst := p.node(to)

	if containsNode(src.outgoing, to) {
		return
	}

	src.outgoing = append(src.outgoing, to)
	dst.incoming = append(dst.incoming, from)
	p.topoEdition++
}

// Node exits the node with the given id. Referencing an id that was
// never created is a contract violation and panics.
func (p *Program) Node(id NodeID) *CFGNode {
	return p.node(id)
}

// NewVariable creates a variable with no bindings and no display name.
func (p *Program) NewVariable() *Variable {
	return p.NewNamedVariable("")
}

// NewNamedVariable creates a variable with no bindings. The name only
// shows up in snapshot documents.
func (p *Program) NewNamedVariable(name string) *Variable {
	v := &Variable{
		program: p,
		id:      VarID(len(p.variables)),
		name:    name,
	}
	p.variables = append(p.variables, v)
	return v
}

// Variables returns all variables of the program in creation order.
// The result is a copy.
func (p *Program) Variables() []*Variable {
	out := make([]*Variable, len(p.variables))
	copy(out, p.variables)
	return out
}

// NumNodes returns the number of CFG nodes created so far.
func (p *Program) NumNodes() int {
	return len(p.nodes)
}

// NumBindings returns the number of bindings created so far, across all
// variables.
func (p *Program) NumBindings() int {
	return len(p.bindings)
}

// Solve answers whether there is a consistent execution reaching start
// at which every binding in goal holds. It uses a program-wide solver
// with [DefaultConfig]; create a dedicated one with [NewSolver] to tune
// budgets or observe queries.
func (p *Program) Solve(start NodeID, goal []*Binding) bool {
	if p.defaultSolver == nil {
		p.defaultSolver = NewSolver(p, DefaultConfig())
	}
	return p.defaultSolver.Solve(start, goal)
}

// CalculateMetrics snapshots the program into plain value records. The
// result holds ids and counts only, no references into the live graph,
// so it stays valid however the program grows afterwards.
func (p *Program) CalculateMetrics() metrics.Metrics {
	m := metrics.Metrics{
		BindingCount: len(p.bindings),
		Nodes:        make([]metrics.NodeMetrics, 0, len(p.nodes)),
		Variables:    make([]metrics.VariableMetrics, 0, len(p.variables)),
		Solvers:      make([]metrics.SolverMetrics, 0, len(p.solvers)),
	}

	for _, n := range p.nodes {
		m.Nodes = append(m.Nodes, metrics.NodeMetrics{
			ID:                int(n.id),
			IncomingEdgeCount: len(n.incoming),
			OutgoingEdgeCount: len(n.outgoing),
			IsCondition:       n.IsCondition(),
		})
	}

	for _, v := range p.variables {
		m.Variables = append(m.Variables, v.metricsRecord())
	}

	for _, s := range p.solvers {
		m.Solvers = append(m.Solvers, s.Metrics())
	}

	return m
}

// node is the checked arena access. Unknown ids mean a defect in the
// calling interpreter, not a property of the analyzed program, hence the
// panic.
func (p *Program) node(id NodeID) *CFGNode {
	assertf(int(id) < len(p.nodes), "unknown node id %d, the program has %d nodes", id, len(p.nodes))
	return p.nodes[id]
}

func (p *Program) binding(id BindingID) *Binding {
	assertf(int(id) < len(p.bindings), "unknown binding id %d, the program has %d bindings", id, len(p.bindings))
	return p.bindings[id]
}

// assertf panics on broken internal contracts. Solve results are never
// errors, so anything that does blow up here indicates a caller bug.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("typegraph: " + fmt.Sprintf(format, args...))
	}
}
