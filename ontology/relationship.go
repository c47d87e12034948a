package ontology

import "fmt"

// RelationKind enumerates the relationship types the engine knows about.
type RelationKind uint8

const (
	// KindOther is any relationship type not listed below. Its identity is
	// carried by the id and label of the RelationshipType.
	KindOther RelationKind = iota
	KindIsA
	KindPartOf
	KindHasPart
	KindSubpropertyOf
	KindHasModifier
	KindRegulates
	KindPositivelyRegulates
	KindNegativelyRegulates
	KindInverseOf
)

type relationInfo struct {
	id    string
	label string
}

var relationInfos = map[RelationKind]relationInfo{
	KindIsA:                 {"is_a", "is a"},
	KindPartOf:              {"BFO:0000050", "part of"},
	KindHasPart:             {"BFO:0000051", "has part"},
	KindSubpropertyOf:       {"subPropertyOf", "subproperty of"},
	KindHasModifier:         {"RO:0002573", "has modifier"},
	KindRegulates:           {"RO:0002211", "regulates"},
	KindPositivelyRegulates: {"RO:0002213", "positively regulates"},
	KindNegativelyRegulates: {"RO:0002212", "negatively regulates"},
	KindInverseOf:           {"inverseOf", "inverse of"},
}

// relationAliases maps the spellings found in OBO, OBO graphs and OWL
// exports to a kind.
var relationAliases = map[string]RelationKind{
	"is_a":                 KindIsA,
	"isa":                  KindIsA,
	"subClassOf":           KindIsA,
	"rdfs:subClassOf":      KindIsA,
	"part_of":              KindPartOf,
	"BFO:0000050":          KindPartOf,
	"has_part":             KindHasPart,
	"BFO:0000051":          KindHasPart,
	"subPropertyOf":        KindSubpropertyOf,
	"subproperty_of":       KindSubpropertyOf,
	"rdfs:subPropertyOf":   KindSubpropertyOf,
	"has_modifier":         KindHasModifier,
	"RO:0002573":           KindHasModifier,
	"regulates":            KindRegulates,
	"RO:0002211":           KindRegulates,
	"positively_regulates": KindPositivelyRegulates,
	"RO:0002213":           KindPositivelyRegulates,
	"negatively_regulates": KindNegativelyRegulates,
	"RO:0002212":           KindNegativelyRegulates,
	"inverseOf":            KindInverseOf,
	"inverse_of":           KindInverseOf,
	"owl:inverseOf":        KindInverseOf,
}

// RelationshipType is the type tag of a Relationship. It is comparable:
// two KindOther types are equal iff their id and label are equal.
type RelationshipType struct {
	kind  RelationKind
	id    string
	label string
}

// Well-known relationship types.
var (
	IsA                 = RelationshipType{kind: KindIsA}
	PartOf              = RelationshipType{kind: KindPartOf}
	HasPart             = RelationshipType{kind: KindHasPart}
	SubpropertyOf       = RelationshipType{kind: KindSubpropertyOf}
	HasModifier         = RelationshipType{kind: KindHasModifier}
	Regulates           = RelationshipType{kind: KindRegulates}
	PositivelyRegulates = RelationshipType{kind: KindPositivelyRegulates}
	NegativelyRegulates = RelationshipType{kind: KindNegativelyRegulates}
	InverseOf           = RelationshipType{kind: KindInverseOf}
)

// OtherRelationship returns the type for an unrecognized predicate.
func OtherRelationship(id, label string) RelationshipType {
	return RelationshipType{kind: KindOther, id: id, label: label}
}

// ParseRelationshipType maps a predicate spelling to a known type. Unknown
// spellings become OtherRelationship(s, label); ok is false in that case.
func ParseRelationshipType(s, label string) (RelationshipType, bool) {
	if kind, found := relationAliases[s]; found {
		return RelationshipType{kind: kind}, true
	}
	if label == "" {
		label = s
	}
	return OtherRelationship(s, label), false
}

// Kind returns the enumerated kind.
func (t RelationshipType) Kind() RelationKind { return t.kind }

// ID returns the canonical predicate id.
func (t RelationshipType) ID() string {
	if t.kind == KindOther {
		return t.id
	}
	return relationInfos[t.kind].id
}

// Label returns a human-readable label.
func (t RelationshipType) Label() string {
	if t.kind == KindOther {
		return t.label
	}
	return relationInfos[t.kind].label
}

// Propagates reports whether the type takes part in ancestor closure
// (the true path rule).
func (t RelationshipType) Propagates() bool {
	switch t.kind {
	case KindIsA, KindPartOf:
		return true
	case KindHasPart, KindSubpropertyOf, KindHasModifier, KindRegulates,
		KindPositivelyRegulates, KindNegativelyRegulates, KindInverseOf, KindOther:
		return false
	default:
		panic(fmt.Sprintf("ontology: unhandled relation kind %d", t.kind))
	}
}

func (t RelationshipType) String() string {
	return t.ID()
}

// MarshalText implements encoding.TextMarshaler.
func (t RelationshipType) MarshalText() ([]byte, error) {
	return []byte(t.ID()), nil
}

// Relationship is a typed edge. Source is the more specific term.
type Relationship struct {
	Source TermID           `json:"source"`
	Target TermID           `json:"target"`
	ID     int              `json:"id"`
	Type   RelationshipType `json:"type"`
}

func (r Relationship) String() string {
	return fmt.Sprintf("%d: %s -[%s]-> %s", r.ID, r.Source, r.Type, r.Target)
}
