package ontology

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// SubOntology derives the ontology induced by id and its descendants.
//
// The result is a complete Ontology of its own: terms, relationships and the
// hierarchy are restricted to the descendant set, id becomes the root, and
// the ancestor index is recomputed for the smaller hierarchy. Term values are
// shared with the receiver, except that an alternate id only carries over
// when it resolves to the same term in the receiver. Provenance is recorded in the metadata under
// MetaProvenance, MetaParentID, MetaParentRel and MetaRoot.
func (o *Ontology) SubOntology(id TermID) (*Ontology, error) {
	r, ok := o.vertexOf(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTerm, id)
	}
	rootID := o.symbols.termID(r)

	// Obsolete terms are not vertices, so the descendant set only ever holds
	// current terms.
	members := make(map[TermID]bool)
	for v := range o.symbols.len() {
		if o.ancestors.contains(vertex(v), r) {
			members[o.symbols.termID(vertex(v))] = true
		}
	}

	terms := make([]Term, 0, len(members))
	for _, tid := range o.terms.nonObsoleteIDs {
		if members[tid] {
			t, _ := o.terms.term(tid)
			t.AltIDs = o.ownedAliases(t)
			terms = append(terms, t)
		}
	}

	rels := make([]Relationship, 0)
	for _, edgeID := range slices.Sorted(maps.Keys(o.relations)) {
		rel := o.relations[edgeID]
		src, okS := o.terms.resolveCurrent(rel.Source)
		dst, okD := o.terms.resolveCurrent(rel.Target)
		if okS && okD && members[src] && members[dst] {
			rels = append(rels, rel)
		}
	}

	meta := o.Meta()
	delete(meta, MetaOntologyID)
	label, _ := o.TermLabel(rootID)
	meta[MetaProvenance] = fmt.Sprintf("Ontology created as a subset of %s with root %s (%s)", o.ID(), rootID, label)
	meta[MetaParentID] = o.ID()
	if v, ok := o.Version(); ok {
		meta[MetaParentRel] = v
	}
	meta[MetaRoot] = rootID.String()

	opts := o.opts
	opts.Root = rootID
	res, err := (&Builder{opts: opts}).Meta(meta).Terms(terms).Relationships(rels).Build()
	if err != nil {
		return nil, fmt.Errorf("derive sub-ontology at %s: %w", rootID, err)
	}
	recordSubOntology(context.Background(), rootID)
	slog.Debug("derived sub-ontology",
		slog.String("root", rootID.String()),
		slog.String("parent", o.ID()),
		slog.Int("terms", res.Stats.Terms),
		slog.Int("relationships", res.Stats.Relationships),
	)
	return res.Ontology, nil
}

// ownedAliases returns the alternate ids of t that resolve to t in o.
func (o *Ontology) ownedAliases(t Term) []TermID {
	var owned []TermID
	for _, alt := range t.AltIDs {
		if p, ok := o.terms.resolveCurrent(alt); ok && p == t.ID {
			owned = append(owned, alt)
		}
	}
	if len(owned) == len(t.AltIDs) {
		return t.AltIDs
	}
	return owned
}
