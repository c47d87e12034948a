// Package ontology builds an immutable ontology graph from terms and typed
// relationships and answers ancestor and descendant queries over it.
//
// # Lifecycle
//
//  1. Collect terms, relationships and metadata, usually from package ontoio.
//  2. Build with NewBuilder(...).Meta(m).Terms(t).Relationships(r).Build().
//     The builder resolves alternate ids, assembles the is_a/part_of
//     hierarchy, picks the root and precomputes every ancestor closure.
//  3. Query the returned *Ontology from any number of goroutines.
//
// Construction trades memory for query speed: the ancestor set of every term
// is materialized once, so AncestorsOf and IsAncestor are lookups. There is
// no incremental update; a changed snapshot is rebuilt.
//
// # Imperfect input
//
// Relationships with unknown or obsolete endpoints, alternate ids claimed
// by two terms and unrecognized relationship types are reported in
// BuildResult and logged with log/slog. Only a missing input, a cycle or the
// absence of a root fail the build.
package ontology
