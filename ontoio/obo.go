package ontoio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	initialTermCapacity = 20000   // HPO has ~19k terms
	scannerBufferSize   = 1 << 20 // 1 MB
)

type stanzaKind int

const (
	stanzaHeader stanzaKind = iota
	stanzaTerm
	stanzaTypedef
	stanzaOther // [Instance] and unknown stanzas are skipped
)

// oboParser accumulates the stanza being read and flushes it into the
// document when the next stanza header or EOF is reached.
type oboParser struct {
	doc  *Document
	pool *internPool

	kind    stanzaKind
	term    TermStanza
	typedef TypeDef
}

// ParseOBO parses an OBO flat file from the given reader.
func ParseOBO(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), scannerBufferSize)

	p := &oboParser{
		doc:  &Document{Terms: make([]TermStanza, 0, initialTermCapacity)},
		pool: newInternPool(),
	}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			p.flush()
			p.begin(line)
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			if p.kind == stanzaHeader {
				return nil, fmt.Errorf("obo line %d: expected tag-value pair, got %q", lineNo, line)
			}
			continue
		}
		p.tag(strings.TrimSpace(key), strings.TrimSpace(val))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obo line %d: %w", lineNo, err)
	}
	p.flush()
	return p.doc, nil
}

func (p *oboParser) begin(header string) {
	switch header {
	case "[Term]":
		p.kind = stanzaTerm
		p.term = TermStanza{}
	case "[Typedef]":
		p.kind = stanzaTypedef
		p.typedef = TypeDef{}
	default:
		p.kind = stanzaOther
	}
}

func (p *oboParser) flush() {
	switch p.kind {
	case stanzaTerm:
		if p.term.ID != "" {
			p.doc.Terms = append(p.doc.Terms, p.term)
		}
	case stanzaTypedef:
		if p.typedef.ID != "" {
			p.doc.TypeDefs = append(p.doc.TypeDefs, p.typedef)
		}
	}
	p.kind = stanzaOther
}

func (p *oboParser) tag(key, val string) {
	switch p.kind {
	case stanzaHeader:
		p.headerTag(key, val)
	case stanzaTerm:
		p.termTag(key, val)
	case stanzaTypedef:
		p.typedefTag(key, val)
	}
}

func (p *oboParser) headerTag(key, val string) {
	val = stripTrailing(val)
	switch key {
	case "format-version":
		p.doc.FormatVersion = val
	case "data-version":
		p.doc.DataVersion = val
	case "ontology":
		p.doc.Ontology = val
	case "date":
		p.doc.Date = val
	}
}

func (p *oboParser) termTag(key, val string) {
	t := &p.term
	switch key {
	case "id":
		t.ID = stripTrailing(val)
	case "name":
		t.Name = stripTrailing(val)
	case "namespace":
		t.Namespace = p.pool.get(stripTrailing(val))
	case "def":
		t.Definition, _ = unquote(val)
	case "comment":
		t.Comment = stripTrailing(val)
	case "subset":
		t.Subsets = append(t.Subsets, p.pool.get(stripTrailing(val)))
	case "synonym":
		t.Synonyms = append(t.Synonyms, parseSynonym(val, p.pool))
	case "xref":
		// xref: UMLS:C0036572 "description"
		if f := strings.Fields(stripTrailing(val)); len(f) > 0 {
			t.Xrefs = append(t.Xrefs, f[0])
		}
	case "alt_id":
		t.AltIDs = append(t.AltIDs, stripTrailing(val))
	case "replaced_by":
		t.ReplacedBy = append(t.ReplacedBy, stripTrailing(val))
	case "is_a":
		t.Relationships = append(t.Relationships, parseIsA(val, p.pool))
	case "relationship":
		if rel, ok := parseRelationship(val, p.pool); ok {
			t.Relationships = append(t.Relationships, rel)
		}
	case "is_obsolete":
		t.IsObsolete = stripTrailing(val) == "true"
	case "property_value":
		k, v := parsePropertyValue(val)
		if k != "" {
			if t.Properties == nil {
				t.Properties = make(map[string]string, 4)
			}
			t.Properties[k] = v
		}
	}
}

func (p *oboParser) typedefTag(key, val string) {
	val = stripTrailing(val)
	switch key {
	case "id":
		p.typedef.ID = p.pool.get(val)
	case "name":
		p.typedef.Name = val
	case "is_transitive":
		p.typedef.IsTransitive = val == "true"
	case "is_reflexive":
		p.typedef.IsReflexive = val == "true"
	}
}

// stripTrailing removes a trailing "! comment" and "{qualifier=...}" block.
func stripTrailing(val string) string {
	if i := strings.Index(val, " !"); i >= 0 {
		val = val[:i]
	} else if strings.HasPrefix(val, "!") {
		return ""
	}
	val = strings.TrimSpace(val)
	if strings.HasSuffix(val, "}") {
		if i := strings.LastIndex(val, " {"); i >= 0 {
			val = val[:i]
		}
	}
	return strings.TrimSpace(val)
}

// unquote reads a double-quoted OBO string with backslash escapes from the
// start of s and returns it with the remainder after the closing quote.
func unquote(s string) (text, rest string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `"`) {
		return stripTrailing(s), ""
	}
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) {
				i++
				sb.WriteByte(unescape(s[i]))
			}
		case '"':
			return sb.String(), strings.TrimSpace(s[i+1:])
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), ""
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

// parseSynonym parses: "text" SCOPE [TYPE] [xrefs]
func parseSynonym(s string, pool *internPool) Synonym {
	var syn Synonym
	text, rest := unquote(s)
	syn.Text = text

	xrefPart := ""
	if i := strings.IndexByte(rest, '['); i >= 0 {
		xrefPart = rest[i:]
		rest = rest[:i]
	}
	fields := strings.Fields(rest)
	if len(fields) > 0 {
		syn.Scope = pool.get(fields[0])
	}
	if len(fields) > 1 {
		syn.Type = pool.get(fields[1])
	}
	syn.Xrefs = parseXrefList(xrefPart)
	return syn
}

// parseXrefList parses "[a, b]" ignoring any trailing modifiers.
func parseXrefList(s string) []string {
	start := strings.IndexByte(s, '[')
	end := strings.IndexByte(s, ']')
	if start < 0 || end <= start+1 {
		return nil
	}
	var out []string
	for x := range strings.SplitSeq(s[start+1:end], ",") {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

// parseIsA parses: "HP:0000118 ! Phenotypic abnormality"
func parseIsA(val string, pool *internPool) RelationshipRef {
	_, name, _ := strings.Cut(val, " ! ")
	return RelationshipRef{
		Type:     pool.get("is_a"),
		TargetID: stripTrailing(val),
		Name:     strings.TrimSpace(name),
	}
}

// parseRelationship parses: "part_of UBERON:0000062 ! organ"
func parseRelationship(val string, pool *internPool) (RelationshipRef, bool) {
	_, name, _ := strings.Cut(val, " ! ")
	fields := strings.Fields(stripTrailing(val))
	if len(fields) < 2 {
		return RelationshipRef{}, false
	}
	return RelationshipRef{
		Type:     pool.get(fields[0]),
		TargetID: fields[1],
		Name:     strings.TrimSpace(name),
	}, true
}

// parsePropertyValue parses: "key value xsd:type" or "key \"value\" xsd:type"
func parsePropertyValue(val string) (string, string) {
	key, rest, ok := strings.Cut(strings.TrimSpace(val), " ")
	if !ok {
		return "", ""
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, `"`) {
		v, _ := unquote(rest)
		return key, v
	}
	v, _, _ := strings.Cut(rest, " ")
	return key, v
}
