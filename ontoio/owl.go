package ontoio

import (
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// OWL/RDF namespace URIs
const (
	nsOWL  = "http://www.w3.org/2002/07/owl#"
	nsRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	nsOBO  = "http://purl.obolibrary.org/obo/"
)

// ParseOWL parses an OBO-style OWL/RDF-XML ontology from the given reader.
// Only named classes, object properties and the ontology header are read.
func ParseOWL(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	pool := newInternPool()

	doc := &Document{
		Terms: make([]TermStanza, 0, initialTermCapacity),
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("owl offset %d: %w", decoder.InputOffset(), err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case matchElement(se, nsOWL, "Class"):
			term := parseOWLClass(decoder, se, pool)
			if term.ID != "" {
				doc.Terms = append(doc.Terms, term)
			}
		case matchElement(se, nsOWL, "Ontology"):
			parseOWLOntologyHeader(decoder, se, doc)
		case matchElement(se, nsOWL, "ObjectProperty"):
			td := parseOWLObjectProperty(decoder, se, pool)
			if td.ID != "" {
				doc.TypeDefs = append(doc.TypeDefs, td)
			}
		case matchElement(se, nsRDF, "RDF"):
			// Container element: descend into it.
		default:
			if err := decoder.Skip(); err != nil {
				return nil, fmt.Errorf("owl offset %d: %w", decoder.InputOffset(), err)
			}
		}
	}

	return doc, nil
}

func matchElement(se xml.StartElement, ns, local string) bool {
	return se.Name.Space == ns && se.Name.Local == local
}

func getAttr(se xml.StartElement, ns, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == ns && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func oboIDFromURI(uri string) string {
	// http://purl.obolibrary.org/obo/HP_0000118 -> HP:0000118
	if strings.HasPrefix(uri, nsOBO) {
		id := uri[len(nsOBO):]
		if idx := strings.IndexByte(id, '_'); idx >= 0 {
			return id[:idx] + ":" + id[idx+1:]
		}
		return id
	}
	return uri
}

func parseOWLOntologyHeader(decoder *xml.Decoder, se xml.StartElement, doc *Document) {
	if about := getAttr(se, nsRDF, "about"); about != "" {
		doc.Ontology = strings.TrimSuffix(path.Base(about), ".owl")
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "versionIRI":
				if v := getAttr(t, nsRDF, "resource"); v != "" {
					doc.DataVersion = strings.TrimPrefix(v, nsOBO)
				}
				decoder.Skip()
			case t.Name.Local == "versionInfo" && doc.DataVersion == "":
				doc.DataVersion = readCharData(decoder)
			case t.Name.Local == "date":
				doc.Date = readCharData(decoder)
			default:
				decoder.Skip()
			}
		case xml.EndElement:
			return
		}
	}
}

func parseOWLClass(decoder *xml.Decoder, se xml.StartElement, pool *internPool) TermStanza {
	var t TermStanza

	about := getAttr(se, nsRDF, "about")
	if about != "" {
		t.ID = oboIDFromURI(about)
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return t
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDFS, "label"):
				t.Name = readCharData(decoder)
			case matchElement(el, nsRDFS, "subClassOf"):
				res := getAttr(el, nsRDF, "resource")
				if res != "" {
					t.Relationships = append(t.Relationships, RelationshipRef{
						Type:     pool.get("is_a"),
						TargetID: oboIDFromURI(res),
					})
					decoder.Skip()
				} else {
					// owl:Restriction with onProperty/someValuesFrom
					rel := parseOWLRestriction(decoder, pool)
					if rel.Type != "" && rel.TargetID != "" {
						t.Relationships = append(t.Relationships, rel)
					}
				}
			case el.Name.Local == "deprecated":
				val := readCharData(decoder)
				t.IsObsolete = val == "true"
			case el.Name.Local == "hasAlternativeId":
				t.AltIDs = append(t.AltIDs, readCharData(decoder))
			case el.Name.Local == "hasOBONamespace":
				t.Namespace = pool.get(readCharData(decoder))
			case el.Name.Local == "IAO_0100001":
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					t.ReplacedBy = append(t.ReplacedBy, oboIDFromURI(res))
					decoder.Skip()
				} else {
					t.ReplacedBy = append(t.ReplacedBy, readCharData(decoder))
				}
			case el.Name.Local == "IAO_0000115" || el.Name.Local == "Definition" || el.Name.Local == "definition":
				t.Definition = readCharData(decoder)
			case el.Name.Local == "hasExactSynonym":
				t.Synonyms = append(t.Synonyms, Synonym{
					Text:  readCharData(decoder),
					Scope: "EXACT",
				})
			case el.Name.Local == "hasBroadSynonym":
				t.Synonyms = append(t.Synonyms, Synonym{
					Text:  readCharData(decoder),
					Scope: "BROAD",
				})
			case el.Name.Local == "hasNarrowSynonym":
				t.Synonyms = append(t.Synonyms, Synonym{
					Text:  readCharData(decoder),
					Scope: "NARROW",
				})
			case el.Name.Local == "hasRelatedSynonym":
				t.Synonyms = append(t.Synonyms, Synonym{
					Text:  readCharData(decoder),
					Scope: "RELATED",
				})
			case el.Name.Local == "hasDbXref" || el.Name.Local == "hasDbXRef":
				t.Xrefs = append(t.Xrefs, readCharData(decoder))
			case el.Name.Local == "inSubset":
				res := getAttr(el, nsRDF, "resource")
				if res != "" {
					t.Subsets = append(t.Subsets, pool.get(oboIDFromURI(res)))
				}
				decoder.Skip()
			case el.Name.Local == "comment":
				t.Comment = readCharData(decoder)
			default:
				// Remaining annotations with text become properties.
				name := el.Name.Local
				val := readCharData(decoder)
				if val != "" {
					if t.Properties == nil {
						t.Properties = make(map[string]string, 4)
					}
					t.Properties[name] = val
				}
			}
		case xml.EndElement:
			return t
		}
	}
}

// parseOWLRestriction parses the content inside a rdfs:subClassOf that contains
// an owl:Restriction with onProperty and someValuesFrom. It consumes tokens up
// to and including the closing rdfs:subClassOf.
func parseOWLRestriction(decoder *xml.Decoder, pool *internPool) RelationshipRef {
	var rel RelationshipRef
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return rel
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsOWL, "Restriction"):
				depth++
			case matchElement(el, nsOWL, "onProperty"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					rel.Type = pool.get(oboIDFromURI(res))
				}
				decoder.Skip()
			case matchElement(el, nsOWL, "someValuesFrom"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					rel.TargetID = oboIDFromURI(res)
				}
				decoder.Skip()
			default:
				// Anonymous class expressions are not hierarchy edges.
				decoder.Skip()
			}
		case xml.EndElement:
			if depth == 0 {
				return rel
			}
			depth--
		}
	}
}

// parseOWLObjectProperty parses an owl:ObjectProperty element.
func parseOWLObjectProperty(decoder *xml.Decoder, se xml.StartElement, pool *internPool) TypeDef {
	var td TypeDef
	about := getAttr(se, nsRDF, "about")
	if about != "" {
		td.ID = oboIDFromURI(about)
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return td
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDF, "type"):
				res := getAttr(el, nsRDF, "resource")
				if res == nsOWL+"TransitiveProperty" {
					td.IsTransitive = true
				} else if res == nsOWL+"ReflexiveProperty" {
					td.IsReflexive = true
				}
				decoder.Skip()
			case matchElement(el, nsRDFS, "label"):
				td.Name = readCharData(decoder)
			default:
				decoder.Skip()
			}
		case xml.EndElement:
			return td
		}
	}
}

func readCharData(decoder *xml.Decoder) string {
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return sb.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			// Nested element: collect its text too.
			inner := readCharData(decoder)
			if inner != "" {
				sb.WriteString(inner)
			}
		case xml.EndElement:
			return sb.String()
		}
	}
}
