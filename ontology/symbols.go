package ontology

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
)

// vertex is a dense index into the symbol table. It doubles as the gonum
// node ID of the hierarchy graph.
type vertex = int64

// symbolTable maps TermIDs to dense vertex indices and back. Vertices are
// assigned in TermID order, so sorting indices sorts identifiers.
type symbolTable struct {
	toVertex map[TermID]vertex
	toID     []TermID
}

func newSymbolTable(ids []TermID) *symbolTable {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, TermID.Compare)
	sorted = slices.Compact(sorted)

	st := &symbolTable{
		toVertex: make(map[TermID]vertex, len(sorted)),
		toID:     sorted,
	}
	for i, id := range sorted {
		st.toVertex[id] = vertex(i)
	}
	return st
}

// lookup returns the vertex for id.
func (st *symbolTable) lookup(id TermID) (vertex, bool) {
	v, ok := st.toVertex[id]
	return v, ok
}

// termID returns the identifier for v.
func (st *symbolTable) termID(v vertex) TermID {
	if v >= 0 && int(v) < len(st.toID) {
		return st.toID[v]
	}
	return TermID{}
}

func (st *symbolTable) len() int { return len(st.toID) }

// node returns the gonum node for v.
func (st *symbolTable) node(v vertex) simple.Node { return simple.Node(v) }

// termIDs converts sorted vertices to identifiers, preserving order.
func (st *symbolTable) termIDs(vs []vertex) []TermID {
	if len(vs) == 0 {
		return nil
	}
	out := make([]TermID, len(vs))
	for i, v := range vs {
		out[i] = st.toID[v]
	}
	return out
}
