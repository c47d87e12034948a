package ontology

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
)

func TestComputeAncestors_Empty(t *testing.T) {
	idx := computeAncestors(simple.NewDirectedGraph(), 0, 4)
	assert.Equal(t, 0, idx.vertices())
	assert.Equal(t, 0, idx.entries())
	assert.Nil(t, idx.of(0))
	assert.False(t, idx.contains(0, 0))
}

func TestComputeAncestors_Diamond(t *testing.T) {
	// 3 -> 1 -> 0, 3 -> 2 -> 0
	g := simple.NewDirectedGraph()
	for i := range 4 {
		g.AddNode(simple.Node(i))
	}
	g.SetEdge(simple.Edge{F: simple.Node(1), T: simple.Node(0)})
	g.SetEdge(simple.Edge{F: simple.Node(2), T: simple.Node(0)})
	g.SetEdge(simple.Edge{F: simple.Node(3), T: simple.Node(1)})
	g.SetEdge(simple.Edge{F: simple.Node(3), T: simple.Node(2)})

	idx := computeAncestors(g, 4, 2)
	assert.Equal(t, 4, idx.vertices())
	assert.Equal(t, []int32{0}, idx.of(0))
	assert.Equal(t, []int32{0, 1}, idx.of(1))
	assert.Equal(t, []int32{0, 2}, idx.of(2))
	assert.Equal(t, []int32{0, 1, 2, 3}, idx.of(3))
	assert.Equal(t, 1+2+2+4, idx.entries())

	assert.True(t, idx.contains(3, 0))
	assert.True(t, idx.contains(2, 2))
	assert.False(t, idx.contains(1, 2))
	assert.False(t, idx.contains(0, 3))
	assert.Nil(t, idx.of(4))
	assert.Nil(t, idx.of(-1))
}

func TestAncestors_MatchReferenceBFS(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			terms, rels := randomDAG(seed, 300)
			o, err := New(map[string]string{}, terms, rels)
			require.NoError(t, err)
			require.Equal(t, tid("T:0000"), o.Root())

			want := referenceAncestors(terms, rels)
			for _, term := range terms {
				got := o.AncestorsOf(term.ID, true)
				require.Equal(t, want[term.ID], got, "closure of %s", term.ID)
				assert.Contains(t, got, term.ID, "self inclusion")
				assert.Contains(t, got, o.Root(), "every term reaches the root")
				for _, a := range got {
					assert.True(t, o.IsAncestor(a, term.ID))
				}
			}
		})
	}
}

func TestAncestors_WorkerCountIndependent(t *testing.T) {
	terms, rels := randomDAG(99, 250)
	base, err := New(map[string]string{}, terms, rels, WithWorkers(1))
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 3, 8, 1000} {
		t.Run(fmt.Sprintf("workers %d", workers), func(t *testing.T) {
			o, err := New(map[string]string{}, terms, rels, WithWorkers(workers))
			require.NoError(t, err)
			assert.Equal(t, base.ancestors.offsets, o.ancestors.offsets)
			assert.Equal(t, base.ancestors.members, o.ancestors.members)
		})
	}
}

func TestAncestors_Idempotent(t *testing.T) {
	first := buildTestOntology(t)
	second := buildTestOntology(t)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, first.Root(), second.Root())
	for id := range first.All() {
		assert.Equal(t, first.AncestorsOf(id, true), second.AncestorsOf(id, true), "closure of %s", id)
	}
}
