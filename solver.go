package typegraph

import (
	"time"

	"github.com/sirkon/rbtree"
	"golang.org/x/tools/container/intsets"

	"github.com/sirkon/typegraph/internal/reach"
	"github.com/sirkon/typegraph/metrics"
)

// Solver answers reachability queries over a program: can a set of
// bindings hold simultaneously when execution reaches a node. It reads
// the graph and the justification data, never mutates them, and owns
// the query cache.
//
// The search runs backward from the query position with an explicit
// worklist. Each popped state is a (node, unresolved goals) pair; a
// per-query tree of seen states guarantees termination on graph cycles
// since no state is ever expanded twice within one query.
type Solver struct {
	program *Program
	conf    Config
	cache   *queryCache

	// Forward reachability shadow of the graph, rebuilt lazily when the
	// program's topology grew since the last query. Cached answers are
	// additionally scoped to the justification edition.
	reach       *reach.Analyzer
	topoEdition uint64
	factEdition uint64

	queries []metrics.QueryMetrics
}

// NewSolver creates a solver over the program. An invalid configuration
// is a caller bug and panics.
func NewSolver(p *Program, conf Config) *Solver {
	if err := conf.validate(); err != nil {
		assertf(false, "solver config: %s", err)
	}

	s := &Solver{
		program: p,
		conf:    conf,
		cache:   newQueryCache(),
	}
	p.solvers = append(p.solvers, s)

	return s
}

// query carries the bookkeeping of one caller-level Solve call across
// all of its sub-queries.
type query struct {
	qm       *metrics.QueryMetrics
	steps    int
	deadline time.Time
}

// Solve answers whether there is a consistent execution reaching start
// at which every binding in goal holds.
//
// Solve never fails: false covers both "provably unsatisfiable" and
// "no witness found", which are the same thing in this closed-world
// model. Referencing nodes or bindings from another program panics, as
// that is a defect of the calling interpreter.
func (s *Solver) Solve(start NodeID, goal []*Binding) bool {
	s.program.node(start) // id check only

	qm := metrics.QueryMetrics{
		StartNode:           int(start),
		EndNode:             int(start),
		InitialBindingCount: len(goal),
	}
	qm.Sat = s.solve(start, goal, &qm)

	s.queries = append(s.queries, qm)
	if s.conf.Observer != nil {
		s.conf.Observer.QueryDone(qm)
	}
	if s.conf.Logger != nil {
		s.conf.Logger.Debug("query done",
			"start", int(start),
			"goals", len(goal),
			"sat", qm.Sat,
			"states", qm.NodesVisited,
			"cached", qm.FromCache,
		)
	}

	return qm.Sat
}

// Metrics snapshots the queries recorded since the last reset together
// with the cache counters.
func (s *Solver) Metrics() metrics.SolverMetrics {
	out := metrics.SolverMetrics{
		Queries: make([]metrics.QueryMetrics, len(s.queries)),
		Cache:   s.cache.snapshot(),
	}
	copy(out.Queries, s.queries)
	return out
}

// ResetMetrics drops the recorded queries. Cache counters keep growing,
// they are program-lifetime by nature.
func (s *Solver) ResetMetrics() {
	s.queries = nil
}

func (s *Solver) solve(start NodeID, goal []*Binding, qm *metrics.QueryMetrics) bool {
	for _, b := range goal {
		assertf(b != nil, "nil binding in the goal set")
		assertf(b.program == s.program, "binding %d belongs to a different program", b.id)
	}

	goals := goalSet(goal)
	qm.TotalBindingCount = goals.Len()

	// Two values of one variable cannot hold at once, no search needed.
	if s.program.conflictingGoals(goals) {
		return false
	}
	if goals.IsEmpty() {
		return true
	}

	s.syncTopology()

	sig := goalSignature(goals)
	if result, ok := s.lookupCache(start, sig); ok {
		qm.FromCache = true
		return result
	}

	q := &query{qm: qm}
	if s.conf.TimeBudget > 0 {
		q.deadline = time.Now().Add(time.Duration(s.conf.TimeBudget))
	}

	ids := goals.AppendTo(nil)
	result := true
	if len(ids) <= s.conf.MaxGoalBatch {
		result = s.search(q, start, goals)
	} else {
		// Wide goal: break the conjunction into consecutive batches and
		// stop at the first false one, the remaining batches cannot
		// change the answer anymore.
		for offset := 0; offset < len(ids); offset += s.conf.MaxGoalBatch {
			end := min(offset+s.conf.MaxGoalBatch, len(ids))
			if !s.solveBatch(q, start, ids[offset:end]) {
				result = false
				if end < len(ids) {
					qm.Shortcircuited = true
				}
				break
			}
		}
	}

	// A budget-exceeded false is an artifact of the budget, not a fact
	// about the program. Keep it out of the cache.
	if !qm.BudgetExceeded {
		s.storeCache(start, sig, result)
	}

	return result
}

func (s *Solver) solveBatch(q *query, start NodeID, ids []int) bool {
	goals := &intsets.Sparse{}
	for _, id := range ids {
		goals.Insert(id)
	}

	sig := goalSignature(goals)
	if result, ok := s.lookupCache(start, sig); ok {
		return result
	}

	result := s.search(q, start, goals)
	if !q.qm.BudgetExceeded {
		s.storeCache(start, sig, result)
	}
	return result
}

// search is the backward AND/OR walk for one conflict-free goal set.
func (s *Solver) search(q *query, start NodeID, goals *intsets.Sparse) bool {
	visited := rbtree.New[*solveState]()
	stack := []*solveState{newSolveState(start, goals, 0)}

	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.overBudget(q) {
			q.qm.BudgetExceeded = true
			return false
		}
		if visited.InsertReturn(st) != st {
			continue
		}

		q.qm.NodesVisited++
		q.qm.EndNode = int(st.node)
		if s.conf.TraceSteps {
			q.qm.Steps = append(q.qm.Steps, metrics.QueryStep{
				Node:     int(st.node),
				Bindings: st.goalIDs(),
				Depth:    st.depth,
			})
		}

		if !s.feasible(st) {
			continue
		}

		// Resolve goals justified right at this node: each source set
		// alternative replaces the goal with its members, which must
		// then hold concurrently at this very node.
		for _, id := range st.goalIDs() {
			b := s.program.binding(BindingID(id))
			org, ok := b.originAt[st.node]
			if !ok {
				continue
			}

			for _, ss := range org.sourceSets {
				next := &intsets.Sparse{}
				next.Copy(st.goals)
				next.Remove(id)
				for _, m := range ss {
					next.Insert(int(m.id))
				}
				q.qm.TotalBindingCount += len(ss)

				if next.IsEmpty() {
					return true
				}
				if s.program.conflictingGoals(next) {
					continue
				}
				stack = append(stack, newSolveState(st.node, next, st.depth+1))
			}
		}

		// Walk backward with the goals as they stand: any of them may
		// resolve at an earlier node instead. The goal set is shared,
		// states never mutate it once built.
		for _, pred := range s.program.node(st.node).incoming {
			stack = append(stack, &solveState{
				node:  pred,
				goals: st.goals,
				sig:   st.sig,
				depth: st.depth + 1,
			})
		}
	}

	return false
}

// feasible prunes states with a hopeless goal: a binding none of whose
// origin nodes can reach the state's position will never resolve on any
// backward path from here.
func (s *Solver) feasible(st *solveState) bool {
	for _, id := range st.goalIDs() {
		b := s.program.binding(BindingID(id))

		ok := false
		for _, org := range b.origins {
			if s.reach.Reachable(int(org.where), int(st.node)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (s *Solver) overBudget(q *query) bool {
	q.steps++
	if s.conf.StepBudget > 0 && q.steps > s.conf.StepBudget {
		return true
	}
	if !q.deadline.IsZero() && time.Now().After(q.deadline) {
		return true
	}
	return false
}

func (s *Solver) lookupCache(node NodeID, sig string) (result, ok bool) {
	result, ok = s.cache.lookup(node, sig)
	if s.conf.Observer != nil {
		if ok {
			s.conf.Observer.CacheHit()
		} else {
			s.conf.Observer.CacheMiss()
		}
	}
	return result, ok
}

func (s *Solver) storeCache(node NodeID, sig string, result bool) {
	s.cache.store(node, sig, result)
}

// syncTopology rebuilds the reachability shadow and drops memoized
// answers if the program grew since the previous query. A fresh edge
// or origin can turn a computed false into true, so cache entries are
// scoped to one (topology, facts) edition pair; the reachability
// shadow only depends on the topology half.
func (s *Solver) syncTopology() {
	p := s.program

	stale := s.reach == nil ||
		s.topoEdition != p.topoEdition ||
		s.factEdition != p.factEdition
	if !stale {
		return
	}

	if s.reach == nil || s.topoEdition != p.topoEdition {
		a := reach.New()
		for range p.nodes {
			a.AddNode()
		}
		for _, n := range p.nodes {
			for _, to := range n.outgoing {
				a.AddEdge(int(n.id), int(to))
			}
		}
		s.reach = a
	}

	s.topoEdition = p.topoEdition
	s.factEdition = p.factEdition
	s.cache.flush()
}
