package typegraph

// NodeID identifies a CFGNode within its Program. Ids are dense and
// assigned in creation order starting from zero.
type NodeID uint32

// CFGNode is a single program point of the control flow graph. Nodes are
// created by [Program.NewNode] during forward construction and are never
// removed; edges are added by [Program.Connect] and never removed either.
// The graph may contain cycles.
type CFGNode struct {
	program *Program
	id      NodeID
	name    string

	incoming []NodeID
	outgoing []NodeID
}

// ID exits the node's id within its program.
func (n *CFGNode) ID() NodeID {
	return n.id
}

// Name exits the display name the node was created with. May be empty.
func (n *CFGNode) Name() string {
	return n.name
}

// Predecessors exits ids of nodes with an edge into this one,
// in edge insertion order. The result is a copy.
func (n *CFGNode) Predecessors() []NodeID {
	out := make([]NodeID, len(n.incoming))
	copy(out, n.incoming)
	return out
}

// Successors exits ids of nodes this one has an edge to,
// in edge insertion order. The result is a copy.
func (n *CFGNode) Successors() []NodeID {
	out := make([]NodeID, len(n.outgoing))
	copy(out, n.outgoing)
	return out
}

// IsCondition exits true if the node is a branch point, i.e. has more
// than one outgoing edge.
func (n *CFGNode) IsCondition() bool {
	return len(n.outgoing) > 1
}

// ConnectTo adds an edge from this node to other. Shorthand for
// [Program.Connect].
func (n *CFGNode) ConnectTo(other *CFGNode) {
	assertf(other != nil, "connect node %d to a nil node", n.id)
	assertf(other.program == n.program, "connect nodes of different programs")
	n.program.Connect(n.id, other.id)
}

func containsNode(ids []NodeID, id NodeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
