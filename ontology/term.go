package ontology

// Term is one ontology concept.
//
// Terms are values. Once handed to a Builder the slices they carry are
// shared with the Ontology and must not be modified.
type Term struct {
	ID         TermID    `json:"id"`
	Name       string    `json:"name,omitempty"`
	AltIDs     []TermID  `json:"alt_ids,omitempty"`
	Obsolete   bool      `json:"is_obsolete,omitempty"`
	Namespace  string    `json:"namespace,omitempty"`
	Definition string    `json:"definition,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	Subsets    []string  `json:"subsets,omitempty"`
	Synonyms   []Synonym `json:"synonyms,omitempty"`
	Xrefs      []string  `json:"xrefs,omitempty"`

	// ReplacedBy names the suggested replacements of an obsolete term.
	ReplacedBy []TermID `json:"replaced_by,omitempty"`
}

// Synonym is a term synonym with its scope.
type Synonym struct {
	Text  string   `json:"text"`
	Scope string   `json:"scope"` // EXACT, BROAD, NARROW, RELATED
	Type  string   `json:"type,omitempty"`
	Xrefs []string `json:"xrefs,omitempty"`
}
