package ontology

import (
	"log/slog"
	"slices"
)

// termTable resolves primary and alternate identifiers to Term records.
type termTable struct {
	terms []Term

	// current holds non-obsolete primary and alternate ids.
	current map[TermID]int32
	// obsolete holds ids of obsolete terms not shadowed by current.
	obsolete map[TermID]int32

	nonObsoleteIDs []TermID
	obsoleteIDs    []TermID
}

// newTermTable partitions terms and builds the alias table. Later terms
// win when two terms claim the same id; an alias never shadows another
// term's primary id.
func newTermTable(input []Term) (*termTable, []AliasConflict) {
	tt := &termTable{
		terms:    slices.Clone(input),
		current:  make(map[TermID]int32, len(input)),
		obsolete: make(map[TermID]int32),
	}

	primaries := make(map[TermID]int32, len(input))
	for slot, t := range tt.terms {
		if t.Obsolete {
			continue
		}
		if prev, dup := primaries[t.ID]; dup {
			slog.Debug("duplicate term id, later stanza wins",
				slog.String("id", t.ID.String()),
				slog.Int("previous_slot", int(prev)),
				slog.Int("slot", slot))
		}
		primaries[t.ID] = int32(slot)
	}

	var conflicts []AliasConflict
	aliases := make(map[TermID]int32)
	for slot, t := range tt.terms {
		if t.Obsolete || primaries[t.ID] != int32(slot) {
			continue
		}
		for _, alt := range t.AltIDs {
			if alt == t.ID {
				continue
			}
			if owner, isPrimary := primaries[alt]; isPrimary {
				conflicts = append(conflicts, AliasConflict{AltID: alt, Loser: t.ID, Winner: tt.terms[owner].ID})
				continue
			}
			if prev, taken := aliases[alt]; taken && tt.terms[prev].ID != t.ID {
				conflicts = append(conflicts, AliasConflict{AltID: alt, Loser: tt.terms[prev].ID, Winner: t.ID})
			}
			aliases[alt] = int32(slot)
		}
	}

	for id, slot := range primaries {
		tt.current[id] = slot
		tt.nonObsoleteIDs = append(tt.nonObsoleteIDs, id)
	}
	for id, slot := range aliases {
		tt.current[id] = slot
	}

	for slot, t := range tt.terms {
		if !t.Obsolete {
			continue
		}
		if _, shadowed := tt.current[t.ID]; !shadowed {
			if _, seen := tt.obsolete[t.ID]; !seen {
				tt.obsoleteIDs = append(tt.obsoleteIDs, t.ID)
			}
			tt.obsolete[t.ID] = int32(slot)
		}
		for _, alt := range t.AltIDs {
			if _, shadowed := tt.current[alt]; !shadowed {
				tt.obsolete[alt] = int32(slot)
			}
		}
	}

	slices.SortFunc(tt.nonObsoleteIDs, TermID.Compare)
	slices.SortFunc(tt.obsoleteIDs, TermID.Compare)
	return tt, conflicts
}

// lookup returns the term slot for any known id.
func (tt *termTable) lookup(id TermID) (int32, bool) {
	if slot, ok := tt.current[id]; ok {
		return slot, true
	}
	slot, ok := tt.obsolete[id]
	return slot, ok
}

// resolve returns the primary id of the term id refers to.
func (tt *termTable) resolve(id TermID) (TermID, bool) {
	slot, ok := tt.lookup(id)
	if !ok {
		return TermID{}, false
	}
	return tt.terms[slot].ID, true
}

// resolveCurrent is resolve restricted to non-obsolete terms.
func (tt *termTable) resolveCurrent(id TermID) (TermID, bool) {
	slot, ok := tt.current[id]
	if !ok {
		return TermID{}, false
	}
	return tt.terms[slot].ID, true
}

func (tt *termTable) term(id TermID) (Term, bool) {
	slot, ok := tt.lookup(id)
	if !ok {
		return Term{}, false
	}
	return tt.terms[slot], true
}

// isObsolete reports whether id resolves only to an obsolete term.
func (tt *termTable) isObsolete(id TermID) bool {
	if _, ok := tt.current[id]; ok {
		return false
	}
	_, ok := tt.obsolete[id]
	return ok
}
