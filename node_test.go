package typegraph

import "testing"

func TestGraphConstruction(t *testing.T) {
	p := NewProgram()

	a := p.NewNamedNode("entry")
	b := p.NewNode()
	c := p.NewNode()

	if a.ID() != 0 || b.ID() != 1 || c.ID() != 2 {
		t.Fatalf("expected dense ids 0..2, got %d, %d, %d", a.ID(), b.ID(), c.ID())
	}
	if a.Name() != "entry" {
		t.Errorf("expected name %q, got %q", "entry", a.Name())
	}

	p.Connect(a.ID(), b.ID())
	p.Connect(a.ID(), b.ID()) // duplicate, must be a no-op
	p.Connect(a.ID(), c.ID())

	if got := a.Successors(); len(got) != 2 {
		t.Errorf("expected 2 successors after a duplicate Connect, got %v", got)
	}
	if got := b.Predecessors(); len(got) != 1 || got[0] != a.ID() {
		t.Errorf("expected predecessors [%d], got %v", a.ID(), got)
	}

	if !a.IsCondition() {
		t.Error("node with two outgoing edges must be a condition")
	}
	if b.IsCondition() || c.IsCondition() {
		t.Error("nodes without branches must not be conditions")
	}
}

func TestGraphSelfLoop(t *testing.T) {
	p := NewProgram()
	n := p.NewNode()

	p.Connect(n.ID(), n.ID())
	p.Connect(n.ID(), n.ID())

	if got := n.Successors(); len(got) != 1 || got[0] != n.ID() {
		t.Errorf("expected a single self edge, got %v", got)
	}
	if got := n.Predecessors(); len(got) != 1 || got[0] != n.ID() {
		t.Errorf("expected a single self edge backwards, got %v", got)
	}
}

func TestGraphEdgeSetsAreCopies(t *testing.T) {
	p := NewProgram()
	a := p.NewNode()
	b := p.NewNode()
	p.Connect(a.ID(), b.ID())

	succ := a.Successors()
	succ[0] = 99
	if got := a.Successors(); got[0] != b.ID() {
		t.Error("Successors returned shared storage, expected a copy")
	}
}

func TestGraphUnknownNode(t *testing.T) {
	p := NewProgram()
	p.NewNode()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on an unknown node id")
		}
	}()

	p.Connect(0, 42)
}
