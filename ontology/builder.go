package ontology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Metadata keys written or read by the engine.
const (
	MetaRelease     = "release"
	MetaDataVersion = "data-version"
	MetaOntologyID  = "ontology-id"
	MetaProvenance  = "provenance"
	MetaParentID    = "parent-ontology-id"
	MetaParentRel   = "parent-release"
	MetaRoot        = "root"
)

// DefaultSentinelRoots are the top concepts preferred when several root
// candidates exist.
var DefaultSentinelRoots = []TermID{
	{prefix: "owl", local: "Thing"},
	{prefix: "HP", local: "0000001"},
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Workers bounds the goroutines used for the ancestor sweep.
	// Zero or negative means runtime.NumCPU().
	Workers int

	// SentinelRoots are tried in order when several root candidates exist.
	SentinelRoots []TermID

	// Root, when set, names the root explicitly. It must be a root
	// candidate.
	Root TermID
}

// DefaultBuilderOptions returns the options used by NewBuilder.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		Workers:       runtime.NumCPU(),
		SentinelRoots: slices.Clone(DefaultSentinelRoots),
	}
}

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*BuilderOptions)

// WithWorkers sets the number of goroutines for the ancestor sweep.
func WithWorkers(n int) BuilderOption {
	return func(o *BuilderOptions) {
		o.Workers = n
	}
}

// WithSentinelRoots replaces the sentinel root list.
func WithSentinelRoots(ids ...TermID) BuilderOption {
	return func(o *BuilderOptions) {
		o.SentinelRoots = slices.Clone(ids)
	}
}

// WithRoot names the root explicitly instead of using the heuristic.
func WithRoot(id TermID) BuilderOption {
	return func(o *BuilderOptions) {
		o.Root = id
	}
}

// Builder collects terms, relationships and metadata and freezes them into
// an Ontology.
//
// A Builder is not safe for concurrent use. Inputs are not copied deeply;
// they must not be modified after Build.
type Builder struct {
	opts          BuilderOptions
	meta          map[string]string
	terms         []Term
	relationships []Relationship
}

// NewBuilder returns a Builder with DefaultBuilderOptions adjusted by opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := DefaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o}
}

// Meta sets the metadata map. Required; may be empty.
func (b *Builder) Meta(meta map[string]string) *Builder {
	b.meta = meta
	return b
}

// Terms sets the term collection. Required.
func (b *Builder) Terms(terms []Term) *Builder {
	b.terms = terms
	return b
}

// Relationships sets the relationship collection. Required.
func (b *Builder) Relationships(rels []Relationship) *Builder {
	b.relationships = rels
	return b
}

// New builds an Ontology in one call and drops the build report.
func New(meta map[string]string, terms []Term, rels []Relationship, opts ...BuilderOption) (*Ontology, error) {
	res, err := NewBuilder(opts...).Meta(meta).Terms(terms).Relationships(rels).Build()
	if err != nil {
		return nil, err
	}
	return res.Ontology, nil
}

// hierarchyEdge is a propagating edge labeled with the relationship that
// produced it.
type hierarchyEdge struct {
	from, to simple.Node
	rel      Relationship
}

func (e hierarchyEdge) From() graph.Node { return e.from }
func (e hierarchyEdge) To() graph.Node   { return e.to }
func (e hierarchyEdge) ReversedEdge() graph.Edge {
	return hierarchyEdge{from: e.to, to: e.from, rel: e.rel}
}

// Build runs the construction pipeline: partition terms, assemble the
// hierarchy, discover the root and precompute ancestor closures.
func (b *Builder) Build() (*BuildResult, error) {
	start := time.Now()
	ctx, span := startBuildSpan(context.Background(), len(b.terms), len(b.relationships))
	defer span.End()

	res, err := b.build()
	if err != nil {
		recordBuildMetrics(ctx, time.Since(start), BuildStats{}, false)
		span.RecordError(err)
		return nil, err
	}

	res.Stats.DurationMicro = time.Since(start).Microseconds()
	res.Ontology.stats = res.Stats
	recordBuildMetrics(ctx, time.Since(start), res.Stats, true)
	setBuildSpanResult(span, res.Stats)
	logBuildWarnings(res)
	return res, nil
}

func (b *Builder) build() (*BuildResult, error) {
	switch {
	case b.meta == nil:
		return nil, fmt.Errorf("%w: metadata", ErrMissingInput)
	case b.terms == nil:
		return nil, fmt.Errorf("%w: terms", ErrMissingInput)
	case b.relationships == nil:
		return nil, fmt.Errorf("%w: relationships", ErrMissingInput)
	}

	res := &BuildResult{}
	tt, conflicts := newTermTable(b.terms)
	res.AliasConflicts = conflicts

	st := newSymbolTable(tt.nonObsoleteIDs)
	n := st.len()
	hier := simple.NewDirectedGraph()
	for v := range n {
		hier.AddNode(st.node(vertex(v)))
	}

	relations := make(map[int]Relationship, len(b.relationships))
	outgoing := make([][]Relationship, n)
	unknown := make(map[RelationshipType]bool)
	for _, rel := range b.relationships {
		if prev, dup := relations[rel.ID]; dup {
			res.RelationshipErrors = append(res.RelationshipErrors, RelationshipError{prev, ErrDuplicateRelationshipID})
		}
		relations[rel.ID] = rel
		if rel.Type.Kind() == KindOther && !unknown[rel.Type] {
			unknown[rel.Type] = true
			res.UnknownTypes = append(res.UnknownTypes, rel.Type)
		}

		src, err := endpoint(tt, st, rel.Source)
		if err == nil {
			var dst vertex
			dst, err = endpoint(tt, st, rel.Target)
			if err == nil {
				err = addRelationship(hier, outgoing, src, dst, rel)
			}
		}
		if err != nil {
			res.RelationshipErrors = append(res.RelationshipErrors, RelationshipError{rel, err})
		}
	}

	var candidates []vertex
	for v := range n {
		if hier.From(int64(v)).Len() == 0 {
			candidates = append(candidates, vertex(v))
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: every one of %d terms has an outgoing is_a/part_of edge", ErrNoRoot, n)
	}
	res.RootCandidates = st.termIDs(candidates)

	if _, err := topo.Sort(hier); err != nil {
		return nil, cycleError(err, st)
	}

	root, heuristic, err := b.chooseRoot(tt, st, candidates)
	if err != nil {
		return nil, err
	}
	res.RootHeuristic = heuristic

	workers := b.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ancestors := computeAncestors(hier, n, workers)

	meta := maps.Clone(b.meta)
	if meta[MetaOntologyID] == "" {
		meta[MetaOntologyID] = uuid.NewString()
	}

	res.Ontology = newOntology(meta, tt, st, hier, outgoing, relations, ancestors, root, b.opts)
	res.Stats = BuildStats{
		Terms:          len(tt.nonObsoleteIDs),
		ObsoleteTerms:  len(tt.obsoleteIDs),
		Relationships:  len(relations),
		HierarchyEdges: hier.Edges().Len(),
		ClosureEntries: ancestors.entries(),
		Workers:        max(1, min(workers, n)),
	}
	return res, nil
}

// endpoint resolves a relationship endpoint to a hierarchy vertex. Alternate
// ids resolve to their primary term.
func endpoint(tt *termTable, st *symbolTable, id TermID) (vertex, error) {
	primary, ok := tt.resolveCurrent(id)
	if !ok {
		if tt.isObsolete(id) {
			return 0, ErrObsoleteEndpoint
		}
		return 0, ErrUnknownEndpoint
	}
	v, _ := st.lookup(primary)
	return v, nil
}

func addRelationship(hier *simple.DirectedGraph, outgoing [][]Relationship, src, dst vertex, rel Relationship) error {
	if src == dst {
		return ErrSelfLoop
	}
	if !rel.Type.Propagates() {
		outgoing[src] = append(outgoing[src], rel)
		return nil
	}
	if hier.HasEdgeFromTo(src, dst) {
		return ErrDuplicateEdge
	}
	outgoing[src] = append(outgoing[src], rel)
	hier.SetEdge(hierarchyEdge{from: simple.Node(src), to: simple.Node(dst), rel: rel})
	return nil
}

// chooseRoot applies the root policy: explicit root, then the unique
// candidate, then the first sentinel present, then the smallest id.
func (b *Builder) chooseRoot(tt *termTable, st *symbolTable, candidates []vertex) (vertex, RootHeuristic, error) {
	if !b.opts.Root.IsZero() {
		primary, ok := tt.resolveCurrent(b.opts.Root)
		if ok {
			v, _ := st.lookup(primary)
			if slices.Contains(candidates, v) {
				return v, RootExplicit, nil
			}
		}
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidRoot, b.opts.Root)
	}
	if len(candidates) == 1 {
		return candidates[0], RootUnique, nil
	}
	for _, s := range b.opts.SentinelRoots {
		if v, ok := st.lookup(s); ok && slices.Contains(candidates, v) {
			return v, RootSentinel, nil
		}
	}
	// Candidates are in vertex order, which is TermID order.
	return candidates[0], RootSmallest, nil
}

func cycleError(err error, st *symbolTable) error {
	var cycles topo.Unorderable
	if !errors.As(err, &cycles) || len(cycles) == 0 {
		return fmt.Errorf("%w: %v", ErrCyclic, err)
	}
	var ids []string
	for _, n := range cycles[0] {
		ids = append(ids, st.termID(n.ID()).String())
	}
	slices.Sort(ids)
	return fmt.Errorf("%w: %d strongly connected component(s), first involves %s",
		ErrCyclic, len(cycles), strings.Join(ids, ", "))
}

func logBuildWarnings(res *BuildResult) {
	if !res.HasWarnings() {
		return
	}
	slog.Warn("ontology built from imperfect input",
		slog.Int("skipped_relationships", len(res.RelationshipErrors)),
		slog.Int("alias_conflicts", len(res.AliasConflicts)),
		slog.Int("unknown_relationship_types", len(res.UnknownTypes)),
		slog.Int("root_candidates", len(res.RootCandidates)),
		slog.String("root_heuristic", res.RootHeuristic.String()),
	)
	for _, e := range res.RelationshipErrors {
		slog.Debug("relationship skipped", slog.String("error", e.Error()))
	}
	for _, c := range res.AliasConflicts {
		slog.Debug("alias conflict", slog.String("detail", c.String()))
	}
	for _, t := range res.UnknownTypes {
		slog.Debug("unknown relationship type", slog.String("id", t.ID()), slog.String("label", t.Label()))
	}
}
