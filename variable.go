package typegraph

import "github.com/sirkon/typegraph/metrics"

// VarID identifies a Variable within its Program.
type VarID uint32

// Variable is an identity accumulating bindings over its lifetime: one
// entry per distinct (value, node) pair the interpreter observed for it.
// Bindings are append-only, a variable never loses one.
type Variable struct {
	program *Program
	id      VarID
	name    string

	bindings []*Binding
	index    map[bindingKey]*Binding
}

// bindingKey is the structural identity of a binding within a variable.
// Values must be comparable tokens, which is a documented contract of
// the whole core: an uncomparable value panics right here, at creation,
// rather than somewhere deep in a query.
type bindingKey struct {
	value any
	node  NodeID
}

// ID exits the variable's id within its program.
func (v *Variable) ID() VarID {
	return v.id
}

// Name exits the display name the variable was created with. May be empty.
func (v *Variable) Name() string {
	return v.name
}

// NewBinding records that the variable may hold value when execution
// reaches node. If an equal (value, node) pair was recorded before, the
// existing binding is returned, so a variable never carries two
// structurally identical bindings.
//
// The value is an opaque comparable token. The core never inspects it
// beyond equality.
func (v *Variable) NewBinding(value any, node NodeID) *Binding {
	p := v.program
	p.node(node) // id check only

	key := bindingKey{value: value, node: node}
	if b, ok := v.index[key]; ok {
		return b
	}

	b := &Binding{
		program:  p,
		id:       BindingID(len(p.bindings)),
		variable: v,
		value:    value,
		node:     node,
	}
	p.bindings = append(p.bindings, b)
	v.bindings = append(v.bindings, b)
	if v.index == nil {
		v.index = map[bindingKey]*Binding{}
	}
	v.index[key] = b

	return b
}

// Bindings returns the variable's bindings in insertion order.
// The result is a copy.
func (v *Variable) Bindings() []*Binding {
	out := make([]*Binding, len(v.bindings))
	copy(out, v.bindings)
	return out
}

// Values returns the distinct values across the variable's bindings, in
// first-appearance order.
func (v *Variable) Values() []any {
	var out []any
	seen := map[any]struct{}{}
	for _, b := range v.bindings {
		if _, ok := seen[b.value]; ok {
			continue
		}
		seen[b.value] = struct{}{}
		out = append(out, b.value)
	}
	return out
}

// metricsRecord copies the variable out as a plain value record: binding
// count plus the distinct nodes at which the variable has some binding.
func (v *Variable) metricsRecord() metrics.VariableMetrics {
	rec := metrics.VariableMetrics{
		ID:           int(v.id),
		BindingCount: len(v.bindings),
	}
	seen := map[NodeID]struct{}{}
	for _, b := range v.bindings {
		if _, ok := seen[b.node]; ok {
			continue
		}
		seen[b.node] = struct{}{}
		rec.NodeIDs = append(rec.NodeIDs, int(b.node))
	}
	return rec
}
