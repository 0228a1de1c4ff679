package metrics

import "encoding/json"

// Document is the wire format consumed by the external graph
// visualization front-end: a standalone page rendering nodes, edges,
// bindings and the recorded query trail interactively.
//
// Everything is keyed by the same dense integer ids the arena uses.
// The invariant the producer guarantees: every id referenced from a
// QueryStep, DocumentVariable or source set resolves within the node,
// variable and binding tables of the same document.
type Document struct {
	Nodes     []DocumentNode     `json:"nodes"`
	Edges     []DocumentEdge     `json:"edges"`
	Variables []DocumentVariable `json:"variables"`
	Bindings  []DocumentBinding  `json:"bindings"`

	// Queries is the recorded query trail, in issue order across all
	// solvers of the program.
	Queries []QueryMetrics `json:"queries"`

	// Display name tables. Entries exist only for entities that were
	// given a name; the front-end falls back to "n<id>" / "v<id>".
	NodeNames     map[int]string `json:"node_names,omitempty"`
	VariableNames map[int]string `json:"variable_names,omitempty"`
}

// DocumentNode is a node table entry.
type DocumentNode struct {
	ID        int  `json:"id"`
	Condition bool `json:"condition"`
}

// DocumentEdge is a directed edge between two node table entries.
type DocumentEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DocumentVariable is a variable table entry referencing its bindings.
type DocumentVariable struct {
	ID       int   `json:"id"`
	Bindings []int `json:"bindings"`
}

// DocumentBinding is a binding table entry: the variable it belongs to,
// the node it was introduced at, a display form of its value, and its
// justifications.
type DocumentBinding struct {
	ID       int              `json:"id"`
	Variable int              `json:"variable"`
	Node     int              `json:"node"`
	Value    string           `json:"value"`
	Origins  []DocumentOrigin `json:"origins,omitempty"`
}

// DocumentOrigin is one origin of a binding: the node it justifies the
// binding at and its source set alternatives as lists of binding ids.
type DocumentOrigin struct {
	Where      int     `json:"where"`
	SourceSets [][]int `json:"source_sets"`
}

// JSON renders the document as a JSON byte string.
func (d *Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}
