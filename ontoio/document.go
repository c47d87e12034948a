// Package ontoio reads OBO and OWL/RDF-XML ontology files and converts them
// into the term and relationship collections consumed by package ontology.
package ontoio

// Document is an ontology file as parsed, before identifiers are validated.
type Document struct {
	FormatVersion string       `json:"format_version,omitempty"`
	DataVersion   string       `json:"data_version,omitempty"`
	Ontology      string       `json:"ontology,omitempty"`
	Date          string       `json:"date,omitempty"`
	Terms         []TermStanza `json:"terms"`
	TypeDefs      []TypeDef    `json:"typedefs,omitempty"`
}

// TypeDef represents an OBO Typedef stanza (object property).
type TypeDef struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	IsTransitive bool   `json:"is_transitive,omitempty"`
	IsReflexive  bool   `json:"is_reflexive,omitempty"`
}

// TermStanza is a single [Term] stanza or owl:Class.
type TermStanza struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Namespace     string            `json:"namespace,omitempty"`
	Definition    string            `json:"definition,omitempty"`
	IsObsolete    bool              `json:"is_obsolete,omitempty"`
	Comment       string            `json:"comment,omitempty"`
	Subsets       []string          `json:"subsets,omitempty"`
	Synonyms      []Synonym         `json:"synonyms,omitempty"`
	Xrefs         []string          `json:"xrefs,omitempty"`
	AltIDs        []string          `json:"alt_ids,omitempty"`
	ReplacedBy    []string          `json:"replaced_by,omitempty"`
	Relationships []RelationshipRef `json:"relationships,omitempty"`
	Properties    map[string]string `json:"properties,omitempty"`
}

// Synonym represents a term synonym with its scope type.
type Synonym struct {
	Text  string   `json:"text"`
	Scope string   `json:"scope"` // EXACT, BROAD, NARROW, RELATED
	Type  string   `json:"type,omitempty"`
	Xrefs []string `json:"xrefs,omitempty"`
}

// RelationshipRef is an outgoing edge of a stanza as written in the file.
type RelationshipRef struct {
	Type     string `json:"type"` // is_a, part_of, BFO:0000050, ...
	TargetID string `json:"target_id"`
	Name     string `json:"name,omitempty"`
}
