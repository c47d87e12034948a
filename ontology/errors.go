package ontology

import "errors"

// Fatal construction errors. Build returns no Ontology when one of these
// occurs.
var (
	// ErrMissingInput is returned when terms, relationships or metadata were
	// never supplied to the Builder.
	ErrMissingInput = errors.New("missing builder input")

	// ErrNoRoot is returned when no vertex lacks an outgoing is_a/part_of
	// edge.
	ErrNoRoot = errors.New("no root candidate found")

	// ErrCyclic is returned when the propagating relationships form a cycle.
	ErrCyclic = errors.New("hierarchy contains a cycle")

	// ErrInvalidRoot is returned when an explicitly requested root is not a
	// root candidate of the hierarchy.
	ErrInvalidRoot = errors.New("requested root is not a root candidate")
)

// ErrMalformedTermID is returned by the TermID constructors.
var ErrMalformedTermID = errors.New("malformed term id")

// ErrUnknownTerm is returned by SubOntology for identifiers that are not
// non-obsolete terms of the ontology.
var ErrUnknownTerm = errors.New("unknown term")

// Causes of skipped relationships. These never abort a build.
var (
	ErrUnknownEndpoint         = errors.New("endpoint is not a known term")
	ErrObsoleteEndpoint        = errors.New("endpoint is an obsolete term")
	ErrSelfLoop                = errors.New("relationship points at its own source")
	ErrDuplicateEdge           = errors.New("hierarchy edge already present")
	ErrDuplicateRelationshipID = errors.New("relationship id already used")
)
