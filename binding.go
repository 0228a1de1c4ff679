package typegraph

import "sort"

// BindingID identifies a Binding within its Program. Ids are dense and
// program-wide, assigned in creation order across all variables.
type BindingID uint32

// SourceSet is a set of bindings that must all hold simultaneously for
// one origin alternative to justify a binding. The empty source set
// means "unconditionally true": the binding needs no other value to
// exist, e.g. a literal constant.
//
// Order does not matter, sets are canonicalized on AddOrigin.
type SourceSet []*Binding

// Origin is a justification of a binding at a single node: the binding
// is available there if any one of the source sets is satisfiable.
// Source sets are tried in insertion order.
type Origin struct {
	where      NodeID
	sourceSets []SourceSet
}

// Where exits the node this origin justifies its binding at.
func (o *Origin) Where() NodeID {
	return o.where
}

// SourceSets exits the OR alternatives of the origin in insertion order.
// The result is a copy of the list, the sets themselves are shared and
// must not be mutated.
func (o *Origin) SourceSets() []SourceSet {
	out := make([]SourceSet, len(o.sourceSets))
	copy(out, o.sourceSets)
	return out
}

// Binding asserts that a variable holds a specific value, introduced at
// a specific node. A binding with no origins at a node is not available
// there and can never satisfy a query rooted there.
type Binding struct {
	program  *Program
	id       BindingID
	variable *Variable
	value    any
	node     NodeID

	origins  []*Origin
	originAt map[NodeID]*Origin
}

// ID exits the binding's program-wide id.
func (b *Binding) ID() BindingID {
	return b.id
}

// Variable returns the variable the binding belongs to.
func (b *Binding) Variable() *Variable {
	return b.variable
}

// Value returns the opaque value token of the binding.
func (b *Binding) Value() any {
	return b.value
}

// Node returns the node the binding was introduced at.
func (b *Binding) Node() NodeID {
	return b.node
}

// AddOrigin appends one justification alternative at node: the binding
// is available there whenever every member of sources holds there too.
// An empty sources set makes the binding unconditionally available at
// the node.
//
// Members may only be bindings created no later than b itself. This
// keeps justification chains free of forward cycles even though the CFG
// is allowed to loop.
//
// Adding a (node, sources) pair that is already known is a no-op.
func (b *Binding) AddOrigin(node NodeID, sources SourceSet) {
	b.program.node(node) // id check only

	canon := canonicalSourceSet(sources)
	for _, m := range canon {
		assertf(m.program == b.program, "origin of binding %d references a binding of a different program", b.id)
		assertf(m.id <= b.id, "origin of binding %d references later binding %d", b.id, m.id)
	}

	org, ok := b.originAt[node]
	if !ok {
		org = &Origin{where: node}
		b.origins = append(b.origins, org)
		if b.originAt == nil {
			b.originAt = map[NodeID]*Origin{}
		}
		b.originAt[node] = org
	}

	for _, known := range org.sourceSets {
		if equalSourceSets(known, canon) {
			return
		}
	}
	org.sourceSets = append(org.sourceSets, canon)
	b.program.factEdition++
}

// Origins returns the binding's origins in first-AddOrigin order.
// The result is a copy of the list.
func (b *Binding) Origins() []*Origin {
	out := make([]*Origin, len(b.origins))
	copy(out, b.origins)
	return out
}

// HasOriginAt reports whether the binding has at least one justification
// at the given node.
func (b *Binding) HasOriginAt(node NodeID) bool {
	_, ok := b.originAt[node]
	return ok
}

// canonicalSourceSet deduplicates members and orders them by id, giving
// source sets a single structural form for the equality check above.
func canonicalSourceSet(sources SourceSet) SourceSet {
	out := make(SourceSet, 0, len(sources))
	seen := map[BindingID]struct{}{}
	for _, m := range sources {
		if _, ok := seen[m.id]; ok {
			continue
		}
		seen[m.id] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func equalSourceSets(a, b SourceSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].id != b[i].id {
			return false
		}
	}
	return true
}
