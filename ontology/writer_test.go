package ontology

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	o := buildTestOntology(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(o, &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is one line")

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, o.ID(), got.ID)
	assert.Equal(t, "2024-04-26", got.Version)
	assert.Equal(t, tid("HP:0000001"), got.Root)
	assert.Equal(t, ids("HP:0000999"), got.Obsolete)
	require.Len(t, got.Terms, 9)

	var visual SummaryTerm
	for _, st := range got.Terms {
		if st.ID == tid("HP:0000505") {
			visual = st
		}
	}
	assert.Equal(t, "Visual impairment", visual.Name)
	assert.Equal(t, []SummaryParent{
		{ID: tid("HP:0000478"), Type: "is_a"},
		{ID: tid("HP:0000707"), Type: "BFO:0000050"},
	}, visual.Parents)
}

func TestWriteJSONPretty(t *testing.T) {
	o := buildTestOntology(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONPretty(o, &buf))
	assert.Contains(t, buf.String(), "\n  \"root\": \"HP:0000001\"")
	assert.Contains(t, buf.String(), `"alt_ids": [`)
}

func TestWriteJSONFile(t *testing.T) {
	o := buildTestOntology(t)
	path := filepath.Join(t.TempDir(), "hp.json")

	require.NoError(t, WriteJSONFile(o, path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Terms, o.Len())

	err = WriteJSONFile(o, filepath.Join(t.TempDir(), "missing", "hp.json"), false)
	assert.Error(t, err)
}

type closeRecorder struct {
	bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (c *closeRecorder) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	return c.Buffer.Write(p)
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteJSONAndClose(t *testing.T) {
	o := buildTestOntology(t)
	errDiskFull := errors.New("disk full")
	errFlush := errors.New("flush failed")

	ok := &closeRecorder{}
	require.NoError(t, writeJSONAndClose(o, ok, false))
	assert.True(t, ok.closed)
	assert.True(t, json.Valid(ok.Bytes()))

	closing := &closeRecorder{closeErr: errFlush}
	assert.ErrorIs(t, writeJSONAndClose(o, closing, false), errFlush)

	both := &closeRecorder{writeErr: errDiskFull, closeErr: errFlush}
	err := writeJSONAndClose(o, both, true)
	assert.ErrorIs(t, err, errDiskFull)
	assert.True(t, both.closed)
}
