package ontology

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

var tid = MustParseTermID

func testTerm(id, name string, altIDs ...string) Term {
	t := Term{ID: tid(id), Name: name}
	for _, alt := range altIDs {
		t.AltIDs = append(t.AltIDs, tid(alt))
	}
	return t
}

func testObsolete(id, name string, altIDs ...string) Term {
	t := testTerm(id, name, altIDs...)
	t.Obsolete = true
	return t
}

func testRel(id int, source string, typ RelationshipType, target string) Relationship {
	return Relationship{Source: tid(source), Target: tid(target), ID: id, Type: typ}
}

func ids(ss ...string) []TermID {
	if len(ss) == 0 {
		return nil
	}
	out := make([]TermID, len(ss))
	for i, s := range ss {
		out[i] = tid(s)
	}
	return out
}

// phenotypeTerms is a small HPO-shaped fixture:
//
//	HP:0000001 All
//	├── HP:0000005 Mode of inheritance
//	│   └── HP:0000006 Autosomal dominant inheritance
//	└── HP:0000118 Phenotypic abnormality
//	    ├── HP:0000478 Abnormality of the eye
//	    │   └── HP:0000505 Visual impairment (is_a)
//	    └── HP:0000707 Abnormality of the nervous system
//	        ├── HP:0000505 Visual impairment (part_of)
//	        └── HP:0012638 Abnormal nervous system physiology
//	            └── HP:0001250 Seizure (alt HP:0001251)
//
// HP:0000999 is obsolete. Relationship 10 is a non-propagating regulates
// edge from HP:0001250 to HP:0000505.
func phenotypeTerms() []Term {
	return []Term{
		testTerm("HP:0000001", "All"),
		testTerm("HP:0000005", "Mode of inheritance"),
		testTerm("HP:0000006", "Autosomal dominant inheritance"),
		testTerm("HP:0000118", "Phenotypic abnormality"),
		testTerm("HP:0000478", "Abnormality of the eye"),
		testTerm("HP:0000505", "Visual impairment"),
		testTerm("HP:0000707", "Abnormality of the nervous system"),
		testTerm("HP:0012638", "Abnormal nervous system physiology"),
		testTerm("HP:0001250", "Seizure", "HP:0001251"),
		testObsolete("HP:0000999", "obsolete Abnormality of the skin", "HP:0009999"),
	}
}

func phenotypeRelationships() []Relationship {
	return []Relationship{
		testRel(1, "HP:0000005", IsA, "HP:0000001"),
		testRel(2, "HP:0000006", IsA, "HP:0000005"),
		testRel(3, "HP:0000118", IsA, "HP:0000001"),
		testRel(4, "HP:0000478", IsA, "HP:0000118"),
		testRel(5, "HP:0000707", IsA, "HP:0000118"),
		testRel(6, "HP:0012638", IsA, "HP:0000707"),
		testRel(7, "HP:0001250", IsA, "HP:0012638"),
		testRel(8, "HP:0000505", IsA, "HP:0000478"),
		testRel(9, "HP:0000505", PartOf, "HP:0000707"),
		testRel(10, "HP:0001250", Regulates, "HP:0000505"),
	}
}

func buildTestOntology(t *testing.T, opts ...BuilderOption) *Ontology {
	t.Helper()
	res, err := NewBuilder(opts...).
		Meta(map[string]string{MetaRelease: "2024-04-26"}).
		Terms(phenotypeTerms()).
		Relationships(phenotypeRelationships()).
		Build()
	require.NoError(t, err)
	require.NotNil(t, res.Ontology)
	return res.Ontology
}

// randomDAG returns a connected DAG rooted at T:0000 where every other term
// has between one and three parents with a smaller index. Every fourth edge
// is part_of, and a sprinkle of has_part edges are added that must not
// affect closures.
func randomDAG(seed uint64, n int) ([]Term, []Relationship) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	name := func(i int) string { return fmt.Sprintf("T:%04d", i) }

	terms := make([]Term, n)
	var rels []Relationship
	for i := range n {
		terms[i] = testTerm(name(i), fmt.Sprintf("term %d", i))
		if i == 0 {
			continue
		}
		seen := make(map[int]bool)
		for range 1 + rng.IntN(3) {
			p := rng.IntN(i)
			if seen[p] {
				continue
			}
			seen[p] = true
			typ := IsA
			if len(rels)%4 == 3 {
				typ = PartOf
			}
			rels = append(rels, testRel(len(rels)+1, name(i), typ, name(p)))
		}
		if i%7 == 0 {
			rels = append(rels, testRel(len(rels)+1, name(rng.IntN(i)), HasPart, name(i)))
		}
	}
	return terms, rels
}

// referenceAncestors computes closures with a plain map-based BFS over the
// propagating relationships, independent of the engine's graph.
func referenceAncestors(terms []Term, rels []Relationship) map[TermID][]TermID {
	parents := make(map[TermID][]TermID)
	for _, r := range rels {
		if r.Type.Propagates() {
			parents[r.Source] = append(parents[r.Source], r.Target)
		}
	}
	out := make(map[TermID][]TermID, len(terms))
	for _, t := range terms {
		seen := map[TermID]bool{t.ID: true}
		queue := []TermID{t.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, p := range parents[cur] {
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
		var closure []TermID
		for id := range seen {
			closure = append(closure, id)
		}
		slices.SortFunc(closure, TermID.Compare)
		out[t.ID] = closure
	}
	return out
}
