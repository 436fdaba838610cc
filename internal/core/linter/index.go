package linter

import "sort"

// PathMessages holds the messages for a single path, split into file level
// messages and messages keyed by line.
type PathMessages struct {
	Global []Message
	ByLine map[int][]Message
}

// Len returns the number of messages for the path.
func (p PathMessages) Len() int {
	n := len(p.Global)
	for _, msgs := range p.ByLine {
		n += len(msgs)
	}
	return n
}

// Lines returns the annotated line numbers in ascending order.
func (p PathMessages) Lines() []int {
	lines := make([]int, 0, len(p.ByLine))
	for l := range p.ByLine {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Index maps file paths to their messages. Paths without messages are not
// present. An Index is rebuilt from a full message list, never patched.
type Index struct {
	byPath map[string]PathMessages
}

// BuildIndex groups messages by path and location, preserving the order in
// which they arrive.
func BuildIndex(messages []Message) Index {
	idx := Index{byPath: make(map[string]PathMessages)}

	for _, msg := range messages {
		pm, ok := idx.byPath[msg.Path]
		if !ok {
			pm = PathMessages{Global: []Message{}, ByLine: map[int][]Message{}}
		}

		if msg.Location.IsGlobal() {
			pm.Global = append(pm.Global, msg)
		} else {
			line := msg.Location.Line()
			pm.ByLine[line] = append(pm.ByLine[line], msg)
		}

		idx.byPath[msg.Path] = pm
	}

	return idx
}

// Lookup returns the messages for path and whether the path has any.
func (i Index) Lookup(path string) (PathMessages, bool) {
	pm, ok := i.byPath[path]
	return pm, ok
}

// ForPath returns the messages for path. A path without messages yields an
// empty, non-nil PathMessages.
func (i Index) ForPath(path string) PathMessages {
	if pm, ok := i.byPath[path]; ok {
		return pm
	}
	return PathMessages{Global: []Message{}, ByLine: map[int][]Message{}}
}

// Paths returns the indexed paths in lexical order.
func (i Index) Paths() []string {
	paths := make([]string, 0, len(i.byPath))
	for p := range i.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Count returns the total number of indexed messages.
func (i Index) Count() int {
	n := 0
	for _, pm := range i.byPath {
		n += pm.Len()
	}
	return n
}

// Selection is the lookup result for the selected path. It distinguishes a
// report that has not been fetched from one that was fetched but has nothing
// for the path.
type Selection struct {
	Fetched  bool
	Found    bool
	Messages PathMessages
}

// Select resolves path against idx. A nil idx means the report is not
// fetched yet.
func Select(idx *Index, path string) Selection {
	if idx == nil {
		return Selection{}
	}
	pm, ok := idx.Lookup(path)
	if !ok {
		return Selection{Fetched: true, Messages: idx.ForPath(path)}
	}
	return Selection{Fetched: true, Found: true, Messages: pm}
}
