package ontology

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"slices"
)

const writerBufferSize = 256 * 1024 // 256 KB

// Summary is the JSON document written by WriteJSON.
type Summary struct {
	ID       string            `json:"id"`
	Version  string            `json:"version,omitempty"`
	Root     TermID            `json:"root"`
	Meta     map[string]string `json:"meta,omitempty"`
	Terms    []SummaryTerm     `json:"terms"`
	Obsolete []TermID          `json:"obsolete,omitempty"`
}

// SummaryTerm is one current term with its direct parents.
type SummaryTerm struct {
	ID      TermID          `json:"id"`
	Name    string          `json:"name,omitempty"`
	AltIDs  []TermID        `json:"alt_ids,omitempty"`
	Parents []SummaryParent `json:"parents,omitempty"`
}

// SummaryParent is a direct parent and the relationship type reaching it.
type SummaryParent struct {
	ID   TermID `json:"id"`
	Type string `json:"type"`
}

// Summarize flattens the ontology into a Summary.
func (o *Ontology) Summarize() *Summary {
	s := &Summary{
		ID:       o.ID(),
		Root:     o.Root(),
		Meta:     o.Meta(),
		Terms:    make([]SummaryTerm, 0, o.Len()),
		Obsolete: slices.Collect(o.Obsolete()),
	}
	s.Version, _ = o.Version()
	for t := range o.Terms() {
		st := SummaryTerm{ID: t.ID, Name: t.Name, AltIDs: t.AltIDs}
		for _, rel := range o.ParentRelationships(t.ID) {
			parent, _ := o.terms.resolveCurrent(rel.Target)
			st.Parents = append(st.Parents, SummaryParent{ID: parent, Type: rel.Type.ID()})
		}
		s.Terms = append(s.Terms, st)
	}
	return s
}

// WriteJSON writes the ontology summary as JSON to the given writer.
func WriteJSON(o *Ontology, w io.Writer) error {
	return writeJSON(o, w, false)
}

// WriteJSONFile writes the ontology summary as JSON to the given file path.
func WriteJSONFile(o *Ontology, path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeJSONAndClose(o, f, pretty)
}

// writeJSONAndClose writes to wc and closes it. A write error takes
// precedence over the close error.
func writeJSONAndClose(o *Ontology, wc io.WriteCloser, pretty bool) error {
	err := writeJSON(o, wc, pretty)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteJSONPretty writes indented JSON to the given writer.
func WriteJSONPretty(o *Ontology, w io.Writer) error {
	return writeJSON(o, w, true)
}

func writeJSON(o *Ontology, w io.Writer, pretty bool) error {
	bw := bufio.NewWriterSize(w, writerBufferSize)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(o.Summarize()); err != nil {
		return err
	}
	return bw.Flush()
}
