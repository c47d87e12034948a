package ontology

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// reverse implements traverse.Graph reversing the direction of edges, so a
// breadth-first walk from a term visits its descendants.
type reverse struct {
	*simple.DirectedGraph
}

func (g reverse) From(id int64) graph.Nodes      { return g.DirectedGraph.To(id) }
func (g reverse) Edge(uid, vid int64) graph.Edge { return g.DirectedGraph.Edge(vid, uid) }

// ChildrenOf returns the terms with a direct is_a/part_of edge to id.
func (o *Ontology) ChildrenOf(id TermID) []TermID {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	return o.sortedIDs(o.hierarchy.To(v))
}

// DescendantsOf returns id and every term that has id as an ancestor.
func (o *Ontology) DescendantsOf(id TermID) []TermID {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	return o.symbols.termIDs(o.descendants(v))
}

func (o *Ontology) descendants(v vertex) []vertex {
	var out []vertex
	var bf traverse.BreadthFirst
	bf.Walk(reverse{o.hierarchy}, simple.Node(v), func(n graph.Node, _ int) bool {
		out = append(out, n.ID())
		return false
	})
	slices.Sort(out)
	return out
}

// ParentsOfAll returns the union of ParentsOf over ids.
func (o *Ontology) ParentsOfAll(ids []TermID) []TermID {
	union := make(map[vertex]struct{})
	for _, id := range ids {
		v, ok := o.vertexOf(id)
		if !ok {
			continue
		}
		parents := o.hierarchy.From(v)
		for parents.Next() {
			union[parents.Node().ID()] = struct{}{}
		}
	}
	return o.symbols.termIDs(slices.Sorted(maps.Keys(union)))
}

// ExistsPath reports whether a non-empty is_a/part_of path leads from src
// to dst. A term has no path to itself.
func (o *Ontology) ExistsPath(src, dst TermID) bool {
	vs, okS := o.vertexOf(src)
	vd, okD := o.vertexOf(dst)
	return okS && okD && vs != vd && o.ancestors.contains(vs, vd)
}

// TermsAreSiblings reports whether a and b share a direct parent.
func (o *Ontology) TermsAreSiblings(a, b TermID) bool {
	va, okA := o.vertexOf(a)
	vb, okB := o.vertexOf(b)
	if !okA || !okB {
		return false
	}
	parents := o.hierarchy.From(va)
	for parents.Next() {
		if o.hierarchy.HasEdgeFromTo(vb, parents.Node().ID()) {
			return true
		}
	}
	return false
}

// TermsAreRelated reports whether a and b share a proper ancestor other
// than the root. Neither query term counts as a shared ancestor, so a term
// directly under the root is unrelated to itself and to its children.
func (o *Ontology) TermsAreRelated(a, b TermID) bool {
	va, okA := o.vertexOf(a)
	vb, okB := o.vertexOf(b)
	if !okA || !okB {
		return false
	}
	for _, x := range o.ancestors.of(va) {
		w := vertex(x)
		if w == va || w == vb || w == o.root {
			continue
		}
		if o.ancestors.contains(vb, w) {
			return true
		}
	}
	return false
}

// TermsAreUnrelated is the negation of TermsAreRelated.
func (o *Ontology) TermsAreUnrelated(a, b TermID) bool {
	return !o.TermsAreRelated(a, b)
}
