package ontology

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Ontology is an immutable, queryable ontology snapshot.
//
// Thread Safety:
//
//	An Ontology is fully built before it is returned and never modified
//	afterwards, so it may be shared by any number of goroutines without
//	locking.
//
// Every query resolves its identifiers first: alternate ids behave like the
// primary id of their term. Unknown identifiers are not errors; they give
// empty results.
type Ontology struct {
	meta      map[string]string
	terms     *termTable
	symbols   *symbolTable
	hierarchy *simple.DirectedGraph
	outgoing  [][]Relationship
	relations map[int]Relationship
	ancestors *ancestorIndex
	root      vertex
	opts      BuilderOptions
	stats     BuildStats

	allIDs func() []TermID
}

func newOntology(
	meta map[string]string,
	tt *termTable,
	st *symbolTable,
	hier *simple.DirectedGraph,
	outgoing [][]Relationship,
	relations map[int]Relationship,
	ancestors *ancestorIndex,
	root vertex,
	opts BuilderOptions,
) *Ontology {
	o := &Ontology{
		meta:      meta,
		terms:     tt,
		symbols:   st,
		hierarchy: hier,
		outgoing:  outgoing,
		relations: relations,
		ancestors: ancestors,
		root:      root,
		opts:      opts,
	}
	o.allIDs = sync.OnceValue(func() []TermID {
		all := make([]TermID, 0, len(tt.nonObsoleteIDs)+len(tt.obsoleteIDs))
		all = append(all, tt.nonObsoleteIDs...)
		all = append(all, tt.obsoleteIDs...)
		slices.SortFunc(all, TermID.Compare)
		return all
	})
	return o
}

// Meta returns a copy of the metadata map.
func (o *Ontology) Meta() map[string]string {
	return maps.Clone(o.meta)
}

// Version returns the release of the ontology, falling back to the OBO
// data-version header.
func (o *Ontology) Version() (string, bool) {
	if v, ok := o.meta[MetaRelease]; ok {
		return v, true
	}
	v, ok := o.meta[MetaDataVersion]
	return v, ok
}

// ID returns the identity assigned at build time.
func (o *Ontology) ID() string { return o.meta[MetaOntologyID] }

// Root returns the root term id.
func (o *Ontology) Root() TermID { return o.symbols.termID(o.root) }

// IsRoot reports whether id resolves to the root.
func (o *Ontology) IsRoot(id TermID) bool {
	v, ok := o.vertexOf(id)
	return ok && v == o.root
}

// Stats returns the statistics recorded when the ontology was built.
func (o *Ontology) Stats() BuildStats { return o.stats }

// Len returns the number of non-obsolete terms.
func (o *Ontology) Len() int { return o.symbols.len() }

// Resolve returns the primary id of the term id refers to, obsolete or not.
func (o *Ontology) Resolve(id TermID) (TermID, bool) {
	return o.terms.resolve(id)
}

// Contains reports whether id is known, as a primary or alternate id of an
// obsolete or current term.
func (o *Ontology) Contains(id TermID) bool {
	_, ok := o.terms.lookup(id)
	return ok
}

// TermFor returns the term id refers to.
func (o *Ontology) TermFor(id TermID) (Term, bool) {
	return o.terms.term(id)
}

// TermLabel returns the name of the term id refers to.
func (o *Ontology) TermLabel(id TermID) (string, bool) {
	t, ok := o.terms.term(id)
	if !ok {
		return "", false
	}
	return t.Name, true
}

// All yields every primary id, obsolete or not, in TermID order.
func (o *Ontology) All() iter.Seq[TermID] {
	return slices.Values(o.allIDs())
}

// NonObsolete yields the primary ids of current terms in TermID order.
func (o *Ontology) NonObsolete() iter.Seq[TermID] {
	return slices.Values(o.terms.nonObsoleteIDs)
}

// Obsolete yields the primary ids of obsolete terms in TermID order.
func (o *Ontology) Obsolete() iter.Seq[TermID] {
	return slices.Values(o.terms.obsoleteIDs)
}

// Terms yields the current terms in TermID order.
func (o *Ontology) Terms() iter.Seq[Term] {
	return func(yield func(Term) bool) {
		for _, id := range o.terms.nonObsoleteIDs {
			t, _ := o.terms.term(id)
			if !yield(t) {
				return
			}
		}
	}
}

// Relationship returns the relationship with the given edge id.
func (o *Ontology) Relationship(edgeID int) (Relationship, bool) {
	r, ok := o.relations[edgeID]
	return r, ok
}

// Relationships yields every relationship of the relation table ordered
// by edge id.
func (o *Ontology) Relationships() iter.Seq[Relationship] {
	return func(yield func(Relationship) bool) {
		for _, id := range slices.Sorted(maps.Keys(o.relations)) {
			if !yield(o.relations[id]) {
				return
			}
		}
	}
}

// RelationshipsFrom returns the relationships of any type leaving id that
// connect two current terms.
func (o *Ontology) RelationshipsFrom(id TermID) []Relationship {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	return slices.Clone(o.outgoing[v])
}

// AncestorsOf returns id and every term reachable from it over is_a and
// part_of edges, sorted. With includeRoot false the root is left out unless
// id is the root itself.
func (o *Ontology) AncestorsOf(id TermID, includeRoot bool) []TermID {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	closure := o.ancestors.of(v)
	out := make([]TermID, 0, len(closure))
	for _, a := range closure {
		if !includeRoot && vertex(a) == o.root && vertex(a) != v {
			continue
		}
		out = append(out, o.symbols.termID(vertex(a)))
	}
	return out
}

// AllAncestorsOf returns the union of AncestorsOf over ids.
func (o *Ontology) AllAncestorsOf(ids []TermID, includeRoot bool) []TermID {
	union := make(map[vertex]struct{})
	for _, id := range ids {
		v, ok := o.vertexOf(id)
		if !ok {
			continue
		}
		for _, a := range o.ancestors.of(v) {
			if !includeRoot && vertex(a) == o.root && vertex(a) != v {
				continue
			}
			union[vertex(a)] = struct{}{}
		}
	}
	return o.symbols.termIDs(slices.Sorted(maps.Keys(union)))
}

// CommonAncestorsOf returns the ancestors shared by a and b. The root is
// never included.
func (o *Ontology) CommonAncestorsOf(a, b TermID) []TermID {
	va, okA := o.vertexOf(a)
	vb, okB := o.vertexOf(b)
	if !okA || !okB {
		return nil
	}
	ca, cb := o.ancestors.of(va), o.ancestors.of(vb)
	var common []vertex
	for i, j := 0, 0; i < len(ca) && j < len(cb); {
		switch {
		case ca[i] < cb[j]:
			i++
		case ca[i] > cb[j]:
			j++
		default:
			if vertex(ca[i]) != o.root {
				common = append(common, vertex(ca[i]))
			}
			i++
			j++
		}
	}
	return o.symbols.termIDs(common)
}

// ParentsOf returns the direct is_a/part_of parents of id.
func (o *Ontology) ParentsOf(id TermID) []TermID {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	return o.sortedIDs(o.hierarchy.From(v))
}

// ParentRelationships returns the relationships that link id to its
// direct parents, ordered by parent id.
func (o *Ontology) ParentRelationships(id TermID) []Relationship {
	v, ok := o.vertexOf(id)
	if !ok {
		return nil
	}
	var out []Relationship
	for _, p := range o.sortedVertices(o.hierarchy.From(v)) {
		out = append(out, o.hierarchy.Edge(v, p).(hierarchyEdge).rel)
	}
	return out
}

// IsAncestor reports whether candidate is in the ancestor closure of of.
// Every term is its own ancestor.
func (o *Ontology) IsAncestor(candidate, of TermID) bool {
	vc, okC := o.vertexOf(candidate)
	vo, okO := o.vertexOf(of)
	return okC && okO && o.ancestors.contains(vo, vc)
}

// vertexOf resolves id to a hierarchy vertex. Obsolete terms have none.
func (o *Ontology) vertexOf(id TermID) (vertex, bool) {
	primary, ok := o.terms.resolveCurrent(id)
	if !ok {
		return 0, false
	}
	return o.symbols.lookup(primary)
}

func (o *Ontology) sortedVertices(nodes graph.Nodes) []vertex {
	var vs []vertex
	for nodes.Next() {
		vs = append(vs, nodes.Node().ID())
	}
	slices.Sort(vs)
	return vs
}

func (o *Ontology) sortedIDs(nodes graph.Nodes) []TermID {
	return o.symbols.termIDs(o.sortedVertices(nodes))
}
