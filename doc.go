// Package typegraph implements the control flow graph and reachability
// solver at the heart of a whole-program Python type inference engine.
//
// An external bytecode interpreter builds a graph of program points
// ([CFGNode]) while simulating execution, and records every value a name
// may hold as a [Binding] of a [Variable]. Each binding carries
// justifications ([Origin] entries): at which program points it is
// available, and which other bindings must hold simultaneously for it to
// be valid there.
//
// The [Solver] answers the single question everything else is built on:
// can a given set of bindings hold at once when execution reaches a given
// program point. It runs a backward AND/OR search over the (possibly
// cyclic) graph, memoizes answers per graph edition, and splits
// large goal sets into shortcircuiting sub-queries to bound worst-case
// work.
//
// # Ownership model
//
// A [Program] is the single arena owning all nodes, variables and
// bindings. Entities address each other by dense integer ids ([NodeID],
// [VarID], [BindingID]), never by owning references, so there is no
// cyclic ownership and state snapshots are plain copies. Everything is
// append-only: nodes, edges, bindings and origins are added during
// construction and never removed.
//
// # Concurrency
//
// A Program and its solvers are single-threaded by design: graph
// construction and Solve calls interleave on one goroutine. Nothing here
// locks. Concurrent adaptations must serialize construction against
// in-flight queries and protect the cache insert themselves.
//
// # Observability
//
// The metrics package holds plain-data records the solver fills in as it
// works. [Program.CalculateMetrics] and [Program.Document] snapshot the
// whole arena into id-keyed value records with no references back into
// the live graph, suitable for serialization or diffing after the
// analysis is gone.
package typegraph
