package typegraph

import (
	"fmt"

	"github.com/sirkon/typegraph/metrics"
)

// Document snapshots the whole arena into the JSON wire format of the
// visualization front-end: node, variable and binding tables keyed by
// id, plus the query trail recorded by every solver of the program.
//
// The snapshot is self-contained: every id a query step or a source set
// mentions resolves within the tables of this same document.
func (p *Program) Document() metrics.Document {
	doc := metrics.Document{
		Nodes:     make([]metrics.DocumentNode, 0, len(p.nodes)),
		Variables: make([]metrics.DocumentVariable, 0, len(p.variables)),
		Bindings:  make([]metrics.DocumentBinding, 0, len(p.bindings)),
	}

	for _, n := range p.nodes {
		doc.Nodes = append(doc.Nodes, metrics.DocumentNode{
			ID:        int(n.id),
			Condition: n.IsCondition(),
		})
		for _, to := range n.outgoing {
			doc.Edges = append(doc.Edges, metrics.DocumentEdge{
				From: int(n.id),
				To:   int(to),
			})
		}
		if n.name != "" {
			if doc.NodeNames == nil {
				doc.NodeNames = map[int]string{}
			}
			doc.NodeNames[int(n.id)] = n.name
		}
	}

	for _, v := range p.variables {
		rec := metrics.DocumentVariable{ID: int(v.id)}
		for _, b := range v.bindings {
			rec.Bindings = append(rec.Bindings, int(b.id))
		}
		doc.Variables = append(doc.Variables, rec)
		if v.name != "" {
			if doc.VariableNames == nil {
				doc.VariableNames = map[int]string{}
			}
			doc.VariableNames[int(v.id)] = v.name
		}
	}

	for _, b := range p.bindings {
		rec := metrics.DocumentBinding{
			ID:       int(b.id),
			Variable: int(b.variable.id),
			Node:     int(b.node),
			Value:    fmt.Sprint(b.value),
		}
		for _, org := range b.origins {
			sets := make([][]int, 0, len(org.sourceSets))
			for _, ss := range org.sourceSets {
				ids := make([]int, 0, len(ss))
				for _, m := range ss {
					ids = append(ids, int(m.id))
				}
				sets = append(sets, ids)
			}
			rec.Origins = append(rec.Origins, metrics.DocumentOrigin{
				Where:      int(org.where),
				SourceSets: sets,
			})
		}
		doc.Bindings = append(doc.Bindings, rec)
	}

	for _, s := range p.solvers {
		doc.Queries = append(doc.Queries, s.Metrics().Queries...)
	}

	return doc
}
