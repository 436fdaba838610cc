// Package diff parses unified diffs into files, hunks and addressable
// changes.
package diff

import (
	"errors"
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// ErrMalformedDiff is returned when the input cannot be parsed as a unified
// diff.
var ErrMalformedDiff = errors.New("malformed diff")

// FileType describes what happened to a file in a diff.
type FileType string

const (
	FileAdd    FileType = "add"
	FileDelete FileType = "delete"
	FileModify FileType = "modify"
	FileRename FileType = "rename"
)

const devNull = "/dev/null"

// FileDiff is the diff of one file.
type FileDiff struct {
	Index   int // position in the parse result
	Type    FileType
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Path returns the path that identifies the file: the new path, or the old
// one for deleted files.
func (f FileDiff) Path() string {
	if f.Type == FileDelete {
		return f.OldPath
	}
	return f.NewPath
}

// Key returns the change key of c, prefixed with the file index for every
// file but the first so keys stay unique across a multi-file parse result.
func (f FileDiff) Key(c Change) string {
	if f.Index == 0 {
		return ChangeKey(c)
	}
	return fmt.Sprintf("F%d-%s", f.Index, ChangeKey(c))
}

// Stats returns the insertion and deletion counts of the file.
func (f FileDiff) Stats() (insertions, deletions int) {
	return Stats(f.Hunks)
}

// StatsLabel formats the file stats the way the header displays them.
func (f FileDiff) StatsLabel() string {
	ins, del := f.Stats()
	return fmt.Sprintf("+++ %d--- %d", ins, del)
}

// Parse parses text as a unified diff containing one or more files. Blank
// input yields no files and no error.
func Parse(text string) ([]FileDiff, error) {
	if strings.TrimSpace(text) == "" {
		return []FileDiff{}, nil
	}

	parsed, err := godiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDiff, err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: no file headers found", ErrMalformedDiff)
	}

	files := make([]FileDiff, 0, len(parsed))
	for i, fd := range parsed {
		file, err := convertFile(i, fd)
		if err != nil {
			return nil, fmt.Errorf("%w: file %d: %w", ErrMalformedDiff, i, err)
		}
		files = append(files, file)
	}

	return files, nil
}

func convertFile(index int, fd *godiff.FileDiff) (FileDiff, error) {
	file := FileDiff{
		Index:   index,
		OldPath: stripPrefix(fd.OrigName, "a/"),
		NewPath: stripPrefix(fd.NewName, "b/"),
	}

	for _, x := range fd.Extended {
		switch {
		case strings.HasPrefix(x, "rename from "):
			file.OldPath = strings.TrimPrefix(x, "rename from ")
		case strings.HasPrefix(x, "rename to "):
			file.NewPath = strings.TrimPrefix(x, "rename to ")
		}
	}

	if file.OldPath == "" && file.NewPath == "" && len(fd.Hunks) == 0 {
		return FileDiff{}, fmt.Errorf("no file names and no hunks")
	}

	switch {
	case fd.OrigName == devNull || hasExtended(fd, "new file mode"):
		file.Type = FileAdd
		file.OldPath = ""
	case fd.NewName == devNull || hasExtended(fd, "deleted file mode"):
		file.Type = FileDelete
		file.NewPath = ""
	case file.OldPath != file.NewPath:
		file.Type = FileRename
	default:
		file.Type = FileModify
	}

	file.Hunks = make([]Hunk, 0, len(fd.Hunks))
	for _, h := range fd.Hunks {
		hunk, err := convertHunk(h)
		if err != nil {
			return FileDiff{}, err
		}
		file.Hunks = append(file.Hunks, hunk)
	}

	return file, nil
}

func hasExtended(fd *godiff.FileDiff, prefix string) bool {
	for _, x := range fd.Extended {
		if strings.HasPrefix(x, prefix) {
			return true
		}
	}
	return false
}

func stripPrefix(name, prefix string) string {
	if name == devNull {
		return ""
	}
	return strings.TrimPrefix(name, prefix)
}
