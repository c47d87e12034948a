package ontology

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTermID(t *testing.T) {
	tests := []struct {
		in      string
		prefix  string
		local   string
		wantErr bool
	}{
		{in: "HP:0001250", prefix: "HP", local: "0001250"},
		{in: "owl:Thing", prefix: "owl", local: "Thing"},
		{in: "NCBITaxon:9606", prefix: "NCBITaxon", local: "9606"},
		{in: "HP0001250", wantErr: true},
		{in: ":0001250", wantErr: true},
		{in: "HP:", wantErr: true},
		{in: "", wantErr: true},
		{in: "a:b:c", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, err := ParseTermID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTermID)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, id.Prefix())
			assert.Equal(t, tt.local, id.Local())
			assert.Equal(t, tt.in, id.String())
		})
	}
}

func TestNewTermID(t *testing.T) {
	id, err := NewTermID("GO", "0008150")
	require.NoError(t, err)
	assert.Equal(t, tid("GO:0008150"), id)

	_, err = NewTermID("GO:", "0008150")
	assert.ErrorIs(t, err, ErrMalformedTermID)
	_, err = NewTermID("GO", "")
	assert.ErrorIs(t, err, ErrMalformedTermID)
}

func TestMustParseTermID_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseTermID("nope") })
}

func TestTermID_Compare(t *testing.T) {
	assert.Negative(t, tid("HP:0000001").Compare(tid("HP:0000002")))
	assert.Negative(t, tid("GO:9999999").Compare(tid("HP:0000001")))
	assert.Positive(t, tid("HP:0000010").Compare(tid("HP:0000002")))
	assert.Zero(t, tid("HP:0000001").Compare(tid("HP:0000001")))
	assert.Equal(t, "", TermID{}.String())
}

func TestTermID_JSON(t *testing.T) {
	type doc struct {
		ID TermID `json:"id"`
	}
	data, err := json.Marshal(doc{ID: tid("HP:0001250")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"HP:0001250"}`, string(data))

	var got doc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, tid("HP:0001250"), got.ID)

	err = json.Unmarshal([]byte(`{"id":"bad"}`), &got)
	assert.ErrorIs(t, err, ErrMalformedTermID)
}
