package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]int{"total": 3}))
	assert.Equal(t, "{\n  \"total\": 3\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]any{"fn": func() {}}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error marshaling in iojson.Write")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError(`bad "input"`, map[string]any{"path": "a.json"})
	assert.JSONEq(t, `{"message": "bad \"input\"", "data": {"path": "a.json"}}`, got)
}

func TestReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.diff")
	require.NoError(t, os.WriteFile(path, []byte("--- a\n+++ b\n"), 0o644))

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "--- a\n+++ b\n", got)

	_, err = ReadAll(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}
