package ontology

import (
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// ancestorIndex holds the reflexive-transitive closure of the hierarchy.
//
// Closures live in one contiguous arena: the ancestors of v are
// members[offsets[v]:offsets[v+1]], sorted by vertex (and so by TermID).
// pairs answers membership in constant time.
type ancestorIndex struct {
	offsets []int32
	members []int32
	pairs   map[uint64]struct{}
}

func pairKey(v, a vertex) uint64 {
	return uint64(v)<<32 | uint64(uint32(a))
}

// computeAncestors runs one breadth-first search per vertex of g, which
// must have nodes 0..n-1. The sweep is split into contiguous vertex ranges
// across at most workers goroutines.
func computeAncestors(g traverse.Graph, n, workers int) *ancestorIndex {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, n))

	closures := make([][]int32, n)
	if n > 0 {
		chunk := (n + workers - 1) / workers
		var eg errgroup.Group
		eg.SetLimit(workers)
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			eg.Go(func() error {
				for v := start; v < end; v++ {
					closures[v] = reachableFrom(g, vertex(v))
				}
				return nil
			})
		}
		_ = eg.Wait()
	}
	return freezeClosures(closures)
}

// reachableFrom returns v and every vertex reachable from it, sorted.
func reachableFrom(g traverse.Graph, v vertex) []int32 {
	var out []int32
	var bf traverse.BreadthFirst
	bf.Walk(g, simple.Node(v), func(n graph.Node, _ int) bool {
		out = append(out, int32(n.ID()))
		return false
	})
	slices.Sort(out)
	return out
}

func freezeClosures(closures [][]int32) *ancestorIndex {
	total := 0
	for _, c := range closures {
		total += len(c)
	}
	idx := &ancestorIndex{
		offsets: make([]int32, len(closures)+1),
		members: make([]int32, 0, total),
		pairs:   make(map[uint64]struct{}, total),
	}
	for v, c := range closures {
		idx.offsets[v] = int32(len(idx.members))
		idx.members = append(idx.members, c...)
		for _, a := range c {
			idx.pairs[pairKey(vertex(v), vertex(a))] = struct{}{}
		}
	}
	idx.offsets[len(closures)] = int32(len(idx.members))
	return idx
}

// of returns the closure of v. The slice aliases the arena.
func (idx *ancestorIndex) of(v vertex) []int32 {
	if v < 0 || int(v) >= len(idx.offsets)-1 {
		return nil
	}
	return idx.members[idx.offsets[v]:idx.offsets[v+1]]
}

// contains reports whether a is in the closure of v.
func (idx *ancestorIndex) contains(v, a vertex) bool {
	_, ok := idx.pairs[pairKey(v, a)]
	return ok
}

func (idx *ancestorIndex) vertices() int { return len(idx.offsets) - 1 }

func (idx *ancestorIndex) entries() int { return len(idx.members) }
