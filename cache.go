package typegraph

import (
	"strings"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/typegraph/metrics"
)

// cacheEntry is one memoized query: position, canonical goal signature
// and the boolean answer. Entries order by (node, signature) in the
// cache tree.
type cacheEntry struct {
	node   NodeID
	sig    string
	result bool
}

// Cmp defines the cache tree ordering.
func (e *cacheEntry) Cmp(other *cacheEntry) int {
	switch {
	case e.node < other.node:
		return -1
	case e.node > other.node:
		return 1
	}
	return strings.Compare(e.sig, other.sig)
}

// queryCache memoizes query answers computed against one edition of the
// graph. Bindings and origins are never retracted, yet new ones can
// still flip a false answer to true, so the owning solver flushes the
// entries whenever the program grew.
type queryCache struct {
	tree *rbtree.Tree[*cacheEntry]

	size   int64
	hits   int64
	misses int64
}

func newQueryCache() *queryCache {
	return &queryCache{tree: rbtree.New[*cacheEntry]()}
}

// lookup probes the cache and counts the probe as a hit or a miss.
func (c *queryCache) lookup(node NodeID, sig string) (result, ok bool) {
	probe := &cacheEntry{node: node, sig: sig}
	found := c.tree.Search(probe)
	if found == nil {
		c.misses++
		return false, false
	}

	c.hits++
	return found.result, true
}

// store memoizes an answer. Storing a signature that is already present
// keeps the existing entry: both computations saw the same immutable
// data, so the answers are identical anyway.
func (c *queryCache) store(node NodeID, sig string, result bool) {
	entry := &cacheEntry{node: node, sig: sig, result: result}
	if c.tree.InsertReturn(entry) == entry {
		c.size++
	}
}

// flush drops the memoized entries while keeping the probe counters:
// hit and miss counts are solver-lifetime, entries only live as long as
// the topology they were computed against.
func (c *queryCache) flush() {
	c.tree = rbtree.New[*cacheEntry]()
	c.size = 0
}

// snapshot copies the counters out as a plain record.
func (c *queryCache) snapshot() metrics.CacheMetrics {
	return metrics.CacheMetrics{
		Size:   c.size,
		Hits:   c.hits,
		Misses: c.misses,
	}
}
