package metrics

// Observer receives solver events as they happen. It is the push
// counterpart of the pull-style snapshots: implementations get copied
// records and ids, never live graph state.
//
// Callbacks run synchronously on the solving goroutine and must be
// cheap.
type Observer interface {
	// QueryDone fires once per caller-level Solve call, with the final
	// record of that query.
	QueryDone(q QueryMetrics)

	// CacheHit and CacheMiss fire on every cache probe, including the
	// probes of internal sub-queries.
	CacheHit()
	CacheMiss()
}
