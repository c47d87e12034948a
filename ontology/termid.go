package ontology

import (
	"fmt"
	"strings"
)

const termIDSeparator = ':'

// TermID is a namespaced ontology identifier such as "HP:0001250".
// The zero value is not a valid identifier.
type TermID struct {
	prefix string
	local  string
}

// NewTermID builds a TermID from its two parts.
func NewTermID(prefix, local string) (TermID, error) {
	if prefix == "" || local == "" {
		return TermID{}, fmt.Errorf("%w: %q:%q has an empty part", ErrMalformedTermID, prefix, local)
	}
	if strings.IndexByte(prefix, termIDSeparator) >= 0 || strings.IndexByte(local, termIDSeparator) >= 0 {
		return TermID{}, fmt.Errorf("%w: %q:%q contains more than one separator", ErrMalformedTermID, prefix, local)
	}
	return TermID{prefix: prefix, local: local}, nil
}

// ParseTermID parses "prefix:local".
func ParseTermID(s string) (TermID, error) {
	prefix, local, ok := strings.Cut(s, string(termIDSeparator))
	if !ok {
		return TermID{}, fmt.Errorf("%w: %q has no separator", ErrMalformedTermID, s)
	}
	return NewTermID(prefix, local)
}

// MustParseTermID is like ParseTermID but panics on malformed input.
// Intended for constants and tests.
func MustParseTermID(s string) TermID {
	id, err := ParseTermID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Prefix returns the namespace part, e.g. "HP".
func (id TermID) Prefix() string { return id.prefix }

// Local returns the part after the separator, e.g. "0001250".
func (id TermID) Local() string { return id.local }

// IsZero reports whether id is the zero TermID.
func (id TermID) IsZero() bool { return id.prefix == "" && id.local == "" }

func (id TermID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.prefix + string(termIDSeparator) + id.local
}

// Compare orders identifiers lexicographically on their rendered form.
func (id TermID) Compare(other TermID) int {
	return strings.Compare(id.String(), other.String())
}

// MarshalText implements encoding.TextMarshaler.
func (id TermID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TermID) UnmarshalText(b []byte) error {
	parsed, err := ParseTermID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
