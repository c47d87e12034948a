package ontology

import "fmt"

// RelationshipError records a relationship that was left out of the
// hierarchy (or overwritten in the relation table) during a build.
type RelationshipError struct {
	Relationship Relationship
	Err          error
}

// Error implements the error interface.
func (e RelationshipError) Error() string {
	return fmt.Sprintf("relationship %s: %v", e.Relationship, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e RelationshipError) Unwrap() error {
	return e.Err
}

// AliasConflict records an alternate id claimed by more than one term.
// Winner is the term the alias resolves to after the build.
type AliasConflict struct {
	AltID  TermID
	Loser  TermID
	Winner TermID
}

func (c AliasConflict) String() string {
	return fmt.Sprintf("alt id %s claimed by %s and %s; resolves to %s", c.AltID, c.Loser, c.Winner, c.Winner)
}

// RootHeuristic describes how the root was chosen.
type RootHeuristic int

const (
	// RootUnique means exactly one root candidate existed.
	RootUnique RootHeuristic = iota

	// RootExplicit means the caller named the root with WithRoot.
	RootExplicit

	// RootSentinel means several candidates existed and a configured
	// sentinel id was among them.
	RootSentinel

	// RootSmallest means several candidates existed and the smallest id
	// was picked.
	RootSmallest
)

func (h RootHeuristic) String() string {
	switch h {
	case RootUnique:
		return "unique"
	case RootExplicit:
		return "explicit"
	case RootSentinel:
		return "sentinel"
	case RootSmallest:
		return "smallest"
	default:
		return "unknown"
	}
}

// BuildStats contains statistics about a build.
type BuildStats struct {
	Terms          int
	ObsoleteTerms  int
	Relationships  int
	HierarchyEdges int
	ClosureEntries int
	Workers        int

	// DurationMicro is the total build time in microseconds.
	DurationMicro int64
}

// BuildResult is returned by Builder.Build.
//
// Construction tolerates imperfect source data: skipped relationships and
// alias conflicts are reported here instead of failing the build.
type BuildResult struct {
	Ontology *Ontology

	RelationshipErrors []RelationshipError
	AliasConflicts     []AliasConflict

	// UnknownTypes lists each distinct KindOther relationship type once,
	// in first-seen order.
	UnknownTypes []RelationshipType

	// RootCandidates lists every vertex without an outgoing propagating
	// edge, in TermID order.
	RootCandidates []TermID
	RootHeuristic  RootHeuristic

	Stats BuildStats
}

// HasWarnings reports whether any recoverable condition was recorded.
func (r *BuildResult) HasWarnings() bool {
	return len(r.RelationshipErrors) > 0 || len(r.AliasConflicts) > 0 ||
		len(r.UnknownTypes) > 0 || len(r.RootCandidates) > 1
}
