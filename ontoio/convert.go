package ontoio

import (
	"fmt"
	"path"
	"strings"

	"github.com/nodeadmin/ontograph/ontology"
)

// Metadata keys filled from the file header.
const (
	MetaFormatVersion = "format-version"
	MetaOntology      = "ontology"
	MetaDate          = "date"
)

// Conversion is the engine input derived from a Document.
type Conversion struct {
	Meta          map[string]string
	Terms         []ontology.Term
	Relationships []ontology.Relationship

	// Warnings lists the stanzas, alternate ids and edges dropped because an
	// identifier did not parse.
	Warnings []error
}

// Convert validates identifiers and produces the term and relationship
// collections for ontology.NewBuilder. Relationships are numbered from 1 in
// stanza order. Relationship types are resolved through the document's
// typedef names, so unknown predicates keep a readable label.
func (d *Document) Convert() *Conversion {
	c := &Conversion{
		Meta:          d.meta(),
		Terms:         make([]ontology.Term, 0, len(d.Terms)),
		Relationships: make([]ontology.Relationship, 0, len(d.Terms)),
	}

	labels := make(map[string]string, len(d.TypeDefs))
	for _, td := range d.TypeDefs {
		if td.Name != "" {
			labels[td.ID] = td.Name
		}
	}

	edgeID := 1
	for _, st := range d.Terms {
		id, err := ontology.ParseTermID(st.ID)
		if err != nil {
			c.Warnings = append(c.Warnings, fmt.Errorf("term stanza: %w", err))
			continue
		}
		c.Terms = append(c.Terms, c.term(id, st))

		for _, ref := range st.Relationships {
			target, err := ontology.ParseTermID(ref.TargetID)
			if err != nil {
				c.Warnings = append(c.Warnings, fmt.Errorf("term %s %s edge: %w", id, ref.Type, err))
				continue
			}
			typ, _ := ontology.ParseRelationshipType(ref.Type, labels[ref.Type])
			c.Relationships = append(c.Relationships, ontology.Relationship{
				Source: id,
				Target: target,
				ID:     edgeID,
				Type:   typ,
			})
			edgeID++
		}
	}
	return c
}

func (c *Conversion) term(id ontology.TermID, st TermStanza) ontology.Term {
	t := ontology.Term{
		ID:         id,
		Name:       st.Name,
		Obsolete:   st.IsObsolete,
		Namespace:  st.Namespace,
		Definition: st.Definition,
		Comment:    st.Comment,
		Subsets:    st.Subsets,
		Xrefs:      st.Xrefs,
	}
	for _, alt := range st.AltIDs {
		altID, err := ontology.ParseTermID(alt)
		if err != nil {
			c.Warnings = append(c.Warnings, fmt.Errorf("term %s alt_id: %w", id, err))
			continue
		}
		t.AltIDs = append(t.AltIDs, altID)
	}
	for _, rb := range st.ReplacedBy {
		rbID, err := ontology.ParseTermID(rb)
		if err != nil {
			c.Warnings = append(c.Warnings, fmt.Errorf("term %s replaced_by: %w", id, err))
			continue
		}
		t.ReplacedBy = append(t.ReplacedBy, rbID)
	}
	for _, syn := range st.Synonyms {
		t.Synonyms = append(t.Synonyms, ontology.Synonym{
			Text:  syn.Text,
			Scope: syn.Scope,
			Type:  syn.Type,
			Xrefs: syn.Xrefs,
		})
	}
	return t
}

func (d *Document) meta() map[string]string {
	m := make(map[string]string, 5)
	set := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	set(MetaFormatVersion, d.FormatVersion)
	set(ontology.MetaDataVersion, d.DataVersion)
	set(MetaOntology, d.Ontology)
	set(MetaDate, d.Date)
	set(ontology.MetaRelease, releaseFrom(d.DataVersion))
	return m
}

// releaseFrom extracts the release tag from a data-version such as
// "hp/releases/2024-04-26" or a version IRI ".../releases/2024-04-26/hp.owl".
func releaseFrom(dataVersion string) string {
	if dataVersion == "" {
		return ""
	}
	if _, after, ok := strings.Cut(dataVersion, "releases/"); ok {
		rel, _, _ := strings.Cut(after, "/")
		return rel
	}
	return path.Base(dataVersion)
}
