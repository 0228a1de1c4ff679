package typegraph

import (
	"strconv"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// solveState is one search position: the node the backward walk stands
// at and the goals still unresolved there. States order by
// (node, goal signature) so a per-query tree can reject re-expansion of
// a state already seen, which is what makes loops in the CFG safe.
type solveState struct {
	node  NodeID
	goals *intsets.Sparse // binding ids
	sig   string
	depth int
}

func newSolveState(node NodeID, goals *intsets.Sparse, depth int) *solveState {
	return &solveState{
		node:  node,
		goals: goals,
		sig:   goalSignature(goals),
		depth: depth,
	}
}

// Cmp defines the visited-states tree ordering.
func (s *solveState) Cmp(other *solveState) int {
	switch {
	case s.node < other.node:
		return -1
	case s.node > other.node:
		return 1
	}
	return strings.Compare(s.sig, other.sig)
}

// goalIDs exits the goal binding ids in ascending order.
func (s *solveState) goalIDs() []int {
	return s.goals.AppendTo(nil)
}

// goalSignature renders a goal set canonically: ascending ids joined
// with commas. Sparse sets iterate in ascending order, so equal sets
// always render the same.
func goalSignature(goals *intsets.Sparse) string {
	ids := goals.AppendTo(nil)

	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// goalSet builds a Sparse set of the bindings' ids.
func goalSet(goal []*Binding) *intsets.Sparse {
	set := &intsets.Sparse{}
	for _, b := range goal {
		set.Insert(int(b.id))
	}
	return set
}

// conflictingGoals reports whether the set holds two different bindings
// of one variable. Such a goal set can never hold in a single
// consistent execution: one variable cannot carry two values at once.
func (p *Program) conflictingGoals(goals *intsets.Sparse) bool {
	seen := map[VarID]BindingID{}
	for _, id := range goals.AppendTo(nil) {
		b := p.binding(BindingID(id))
		if prev, ok := seen[b.variable.id]; ok && prev != b.id {
			return true
		}
		seen[b.variable.id] = b.id
	}
	return false
}
