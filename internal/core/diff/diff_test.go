package diff

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestParse_Basic(t *testing.T) {
	files, err := Parse(readFixture(t, "basic.diff"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, FileModify, f.Type)
	assert.Equal(t, "lib/react.js", f.OldPath)
	assert.Equal(t, "lib/react.js", f.Path())
	require.Len(t, f.Hunks, 1)
	assert.Equal(t, "@@ -1,3 +1,5 @@", f.Hunks[0].Header())

	changes := FlattenHunkChanges(f.Hunks)
	require.Len(t, changes, 5)

	assert.Equal(t, Change{Type: ChangeNormal, OldLine: 1, NewLine: 1, Content: "import React from 'react';"}, changes[0])
	assert.Equal(t, Change{Type: ChangeInsert, NewLine: 2, Content: "import PropTypes from 'prop-types';"}, changes[1])
	assert.Equal(t, Change{Type: ChangeNormal, OldLine: 2, NewLine: 3, Content: ""}, changes[2])
	assert.Equal(t, Change{Type: ChangeInsert, NewLine: 4, Content: "export const version = '16.8';"}, changes[3])
	assert.Equal(t, Change{Type: ChangeNormal, OldLine: 3, NewLine: 5, Content: "export default React;"}, changes[4])

	assert.Equal(t, "+++ 2--- 0", f.StatsLabel())
}

func TestParse_MultipleFiles(t *testing.T) {
	files, err := Parse(readFixture(t, "multiple.diff"))
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, FileModify, files[0].Type)
	assert.Equal(t, "src/app.js", files[0].Path())
	assert.Len(t, files[0].Hunks, 2)
	assert.Equal(t, "function main() {", files[0].Hunks[1].Section)
	assert.Equal(t, "+++ 2--- 1", files[0].StatsLabel())

	assert.Equal(t, FileAdd, files[1].Type)
	assert.Equal(t, "README.md", files[1].Path())
	assert.Empty(t, files[1].OldPath)
	assert.Equal(t, "+++ 2--- 0", files[1].StatsLabel())

	assert.Equal(t, FileDelete, files[2].Type)
	assert.Equal(t, "old.txt", files[2].Path())
	assert.Equal(t, "+++ 0--- 1", files[2].StatsLabel())

	for i, f := range files {
		assert.Equal(t, i, f.Index)
	}
}

func TestParse_Rename(t *testing.T) {
	text := strings.Join([]string{
		"diff --git a/src/old.js b/src/new.js",
		"similarity index 90%",
		"rename from src/old.js",
		"rename to src/new.js",
		"index 1111111..2222222 100644",
		"--- a/src/old.js",
		"+++ b/src/new.js",
		"@@ -1,1 +1,1 @@",
		"-a",
		"+b",
		"",
	}, "\n")

	files, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, FileRename, files[0].Type)
	assert.Equal(t, "src/old.js", files[0].OldPath)
	assert.Equal(t, "src/new.js", files[0].NewPath)
}

func TestParse_Blank(t *testing.T) {
	files, err := Parse("  \n")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "plain text", text: "this is not a diff\n"},
		{name: "hunk without file header", text: "@@ -1,1 +1,1 @@\n-a\n+b\n"},
		{name: "bad hunk header", text: "--- a/x\n+++ b/x\n@@ -x +y @@\n a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDiff)
		})
	}
}

func TestFlattenHunkChanges_PreservesCount(t *testing.T) {
	files, err := Parse(readFixture(t, "multiple.diff"))
	require.NoError(t, err)

	for _, f := range files {
		want := 0
		for _, h := range f.Hunks {
			want += len(h.Changes)
		}
		assert.Len(t, FlattenHunkChanges(f.Hunks), want, f.Path())
	}

	assert.Empty(t, FlattenHunkChanges(nil))
}

func TestChangeKey(t *testing.T) {
	assert.Equal(t, "I4", ChangeKey(Change{Type: ChangeInsert, NewLine: 4}))
	assert.Equal(t, "D7", ChangeKey(Change{Type: ChangeDelete, OldLine: 7}))
	assert.Equal(t, "N2", ChangeKey(Change{Type: ChangeNormal, OldLine: 2, NewLine: 3}))
}

func TestKeys_UniqueAcrossParseResult(t *testing.T) {
	files, err := Parse(readFixture(t, "multiple.diff"))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, f := range files {
		for _, c := range FlattenHunkChanges(f.Hunks) {
			key := f.Key(c)
			assert.False(t, seen[key], "duplicate key %s", key)
			seen[key] = true
		}
	}

	assert.True(t, seen["I2"])
	assert.True(t, seen["F1-I1"])
	assert.True(t, seen["F2-D1"])
}

// buildDiff produces a single-hunk diff with the given number of deleted and
// inserted lines.
func buildDiff(insertions, deletions int) string {
	var b strings.Builder
	b.WriteString("--- a/file.js\n+++ b/file.js\n")
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", deletions, insertions)
	for i := 0; i < deletions; i++ {
		fmt.Fprintf(&b, "-old %d\n", i)
	}
	for i := 0; i < insertions; i++ {
		fmt.Fprintf(&b, "+new %d\n", i)
	}
	return b.String()
}

func TestStatsLabel(t *testing.T) {
	tests := []struct {
		insertions, deletions int
		want                  string
	}{
		{insertions: 2, deletions: 0, want: "+++ 2--- 0"},
		{insertions: 24, deletions: 4, want: "+++ 24--- 4"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			files, err := Parse(buildDiff(tt.insertions, tt.deletions))
			require.NoError(t, err)
			require.Len(t, files, 1)
			assert.Equal(t, tt.want, files[0].StatsLabel())
		})
	}
}

func TestDecodeBody_NoNewlineMarker(t *testing.T) {
	changes, err := decodeBody("-a\n\\ No newline at end of file\n+b\n", 1, 1)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, ChangeDelete, changes[0].Type)
	assert.Equal(t, ChangeInsert, changes[1].Type)
}

func TestAnnotationLine(t *testing.T) {
	line, ok := AnnotationLine(Change{Type: ChangeInsert, NewLine: 5})
	assert.True(t, ok)
	assert.Equal(t, 5, line)

	line, ok = AnnotationLine(Change{Type: ChangeNormal, OldLine: 2, NewLine: 3})
	assert.True(t, ok)
	assert.Equal(t, 3, line)

	_, ok = AnnotationLine(Change{Type: ChangeDelete, OldLine: 2})
	assert.False(t, ok)
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "insert", ChangeInsert.String())
	assert.Equal(t, "delete", ChangeDelete.String())
	assert.Equal(t, "normal", ChangeNormal.String())
}

func TestDecodeBody_CRLF(t *testing.T) {
	changes, err := decodeBody(" a\r\n-b\r\n+c\r\n\r\n", 1, 1)
	require.NoError(t, err)
	require.Len(t, changes, 4)

	assert.Equal(t, Change{Type: ChangeNormal, OldLine: 1, NewLine: 1, Content: "a"}, changes[0])
	assert.Equal(t, Change{Type: ChangeDelete, OldLine: 2, Content: "b"}, changes[1])
	assert.Equal(t, Change{Type: ChangeInsert, NewLine: 2, Content: "c"}, changes[2])
	assert.Equal(t, Change{Type: ChangeNormal, OldLine: 3, NewLine: 3, Content: ""}, changes[3])
}
