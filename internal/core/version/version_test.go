package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeVersionJSON = `{
  "id": 123,
  "addon": 9,
  "version": "1.0.1",
  "validation_url_json": "/api/v4/reviewers/addon/9/versions/123/validation/",
  "file": {
    "id": 789,
    "content": "console.log('hi');\n",
    "hash": "sha256:abc",
    "size": 19,
    "selected_file": "lib/react.js",
    "download_url": "https://example.com/file.xpi",
    "entries": {
      "lib/react.js": {"depth": 1, "filename": "react.js", "mimetype": "application/javascript", "path": "lib/react.js", "sha256": "abc", "size": 19},
      "manifest.json": {"depth": 0, "filename": "manifest.json", "mimetype": "application/json", "path": "manifest.json", "sha256": "def", "size": 120}
    }
  }
}`

func TestFromExternal(t *testing.T) {
	var ext External
	require.NoError(t, json.Unmarshal([]byte(fakeVersionJSON), &ext))

	v := FromExternal(ext)

	assert.Equal(t, 123, v.ID)
	assert.Equal(t, 9, v.AddonID)
	assert.Equal(t, "lib/react.js", v.SelectedPath)
	assert.Equal(t, "/api/v4/reviewers/addon/9/versions/123/validation/", v.ReportLocation)
	assert.Equal(t, "application/javascript", v.File.MimeType, "mime falls back to the selected entry")
	assert.Equal(t, int64(19), v.File.Size)
	assert.Equal(t, []string{"lib/react.js", "manifest.json"}, v.Paths())

	entry, ok := v.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, "react.js", entry.Filename)
	assert.Equal(t, 1, entry.Depth)
}

func TestFromExternal_MetadataFromEntry(t *testing.T) {
	ext := External{ID: 5}
	ext.File.SelectedFile = "manifest.json"
	ext.File.Entries = map[string]ExternalEntry{
		"manifest.json": {Path: "manifest.json", MimeType: "application/json", SHA256: "def", Size: 120},
	}

	v := FromExternal(ext)

	assert.Equal(t, "application/json", v.File.MimeType)
	assert.Equal(t, int64(120), v.File.Size)
	assert.Equal(t, "def", v.File.SHA256)
}

func TestFromExternal_FileMetadataWins(t *testing.T) {
	ext := External{ID: 5}
	ext.File.SelectedFile = "manifest.json"
	ext.File.Hash = "sha256:own"
	ext.File.Size = 7
	ext.File.Entries = map[string]ExternalEntry{
		"manifest.json": {Path: "manifest.json", SHA256: "def", Size: 120},
	}

	v := FromExternal(ext)

	assert.Equal(t, int64(7), v.File.Size)
	assert.Equal(t, "sha256:own", v.File.SHA256)
}
