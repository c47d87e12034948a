package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRelationshipType(t *testing.T) {
	tests := []struct {
		in   string
		want RelationshipType
	}{
		{"is_a", IsA},
		{"rdfs:subClassOf", IsA},
		{"part_of", PartOf},
		{"BFO:0000050", PartOf},
		{"has_part", HasPart},
		{"subPropertyOf", SubpropertyOf},
		{"RO:0002573", HasModifier},
		{"regulates", Regulates},
		{"positively_regulates", PositivelyRegulates},
		{"RO:0002212", NegativelyRegulates},
		{"owl:inverseOf", InverseOf},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRelationshipType(tt.in, "")
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRelationshipType_Unknown(t *testing.T) {
	got, ok := ParseRelationshipType("RO:0002202", "develops from")
	assert.False(t, ok)
	assert.Equal(t, KindOther, got.Kind())
	assert.Equal(t, "RO:0002202", got.ID())
	assert.Equal(t, "develops from", got.Label())
	assert.Equal(t, OtherRelationship("RO:0002202", "develops from"), got)

	got, _ = ParseRelationshipType("occurs_in", "")
	assert.Equal(t, "occurs_in", got.Label())

	assert.NotEqual(t, OtherRelationship("RO:0002202", "a"), OtherRelationship("RO:0002202", "b"))
}

func TestRelationshipType_Propagates(t *testing.T) {
	assert.True(t, IsA.Propagates())
	assert.True(t, PartOf.Propagates())
	for _, typ := range []RelationshipType{
		HasPart, SubpropertyOf, HasModifier, Regulates, PositivelyRegulates,
		NegativelyRegulates, InverseOf, OtherRelationship("x", "y"),
	} {
		assert.False(t, typ.Propagates(), typ.ID())
	}
	assert.Panics(t, func() { RelationshipType{kind: 200}.Propagates() })
}

func TestRelationshipType_Labels(t *testing.T) {
	assert.Equal(t, "is_a", IsA.ID())
	assert.Equal(t, "is a", IsA.Label())
	assert.Equal(t, "BFO:0000050", PartOf.String())
	assert.Equal(t, "part of", PartOf.Label())

	text, err := HasPart.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "BFO:0000051", string(text))
}
