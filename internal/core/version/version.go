// Package version models a submitted add-on version and the file currently
// selected for review.
package version

import (
	"sort"
)

// Version is one submitted version. It is immutable for a render pass and is
// replaced wholesale on navigation.
type Version struct {
	ID             int
	AddonID        int
	Number         string
	SelectedPath   string
	ReportLocation string
	Entries        map[string]FileEntry
	File           FileContent
}

// FileEntry describes one file inside the version's package.
type FileEntry struct {
	Path     string
	Filename string
	Depth    int
	MimeType string
	Size     int64
	SHA256   string
}

// FileContent is the content of the selected file.
type FileContent struct {
	Text        string
	MimeType    string
	Size        int64
	SHA256      string
	DownloadURL string
}

// SelectedEntry returns the entry for the selected path.
func (v Version) SelectedEntry() (FileEntry, bool) {
	e, ok := v.Entries[v.SelectedPath]
	return e, ok
}

// Paths returns every entry path in lexical order.
func (v Version) Paths() []string {
	paths := make([]string, 0, len(v.Entries))
	for p := range v.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
