package codeview

import (
	"fmt"
	"strings"

	"github.com/colonyops/lintlens/internal/core/diff"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/logging"
)

// DiffInput is everything needed to render a unified diff.
type DiffInput struct {
	Text     string
	Language string // used for files without a resolvable language; may be ""
	Resolve  func(path string) string
	Include  func(path string) bool // nil renders every file
	Index    *linter.Index          // nil when the report is not fetched
	Anchor   string
	ViewType ViewType
}

// DiffRow is one change of a hunk.
type DiffRow struct {
	Key      string
	Change   diff.Change
	Spans    []highlight.Span
	Selected bool
}

// HunkView is one rendered hunk.
type HunkView struct {
	Header string
	Rows   []DiffRow
}

// Section is the rendering of one file of the diff.
type Section struct {
	File       diff.FileDiff
	Header     string // "+++ <ins>--- <del>"
	Insertions int
	Deletions  int
	Hunks      []HunkView
	Widgets    map[string]Widget // sparse, keyed by change key
}

// DiffView is the render tree for diff mode.
type DiffView struct {
	Global          []linter.Message
	Sections        []Section
	Empty           bool // no files: show "No differences"
	ViewType        ViewType
	SelectedChanges []string
	Dropped         int // messages whose line is not part of the diff
}

// RowRef addresses a row inside a DiffView.
type RowRef struct {
	Section int
	Hunk    int
	Row     int
}

// RenderDiff parses the diff and attaches each file's line messages to the
// change that shows that line on the new side. Deleted lines never carry
// widgets. A malformed diff is returned as an error and nothing is rendered.
func RenderDiff(in DiffInput) (DiffView, error) {
	files, err := diff.Parse(in.Text)
	if err != nil {
		return DiffView{}, fmt.Errorf("render diff: %w", err)
	}

	view := DiffView{
		ViewType: in.ViewType,
		Sections: make([]Section, 0, len(files)),
	}
	if view.ViewType == "" {
		view.ViewType = ViewUnified
	}

	for _, f := range files {
		if in.Include != nil && !in.Include(f.Path()) {
			continue
		}

		language := in.Language
		if in.Resolve != nil {
			if l := in.Resolve(f.Path()); l != "" {
				language = l
			}
		}

		sel := linter.Select(in.Index, f.Path())
		view.Global = append(view.Global, sel.Messages.Global...)

		section, dropped := renderSection(f, language, sel.Messages, in.Anchor)
		view.Dropped += dropped
		view.Sections = append(view.Sections, section)
	}
	view.Empty = len(view.Sections) == 0

	for _, s := range view.Sections {
		for _, h := range s.Hunks {
			for _, r := range h.Rows {
				if r.Selected {
					view.SelectedChanges = append(view.SelectedChanges, r.Key)
				}
			}
		}
	}

	return view, nil
}

func renderSection(f diff.FileDiff, language string, pm linter.PathMessages, anchor string) (Section, int) {
	ins, del := f.Stats()
	section := Section{
		File:       f,
		Header:     f.StatsLabel(),
		Insertions: ins,
		Deletions:  del,
		Hunks:      make([]HunkView, 0, len(f.Hunks)),
		Widgets:    map[string]Widget{},
	}

	for _, h := range f.Hunks {
		spans := highlightHunk(h, language)
		hv := HunkView{Header: h.Header(), Rows: make([]DiffRow, 0, len(h.Changes))}

		for i, c := range h.Changes {
			key := f.Key(c)
			hv.Rows = append(hv.Rows, DiffRow{
				Key:      key,
				Change:   c,
				Spans:    spans[i],
				Selected: IsSelected(key, anchor),
			})
		}

		section.Hunks = append(section.Hunks, hv)
	}

	// new-side line -> change key
	lineKeys := map[int]string{}
	for _, c := range diff.FlattenHunkChanges(f.Hunks) {
		if line, ok := diff.AnnotationLine(c); ok {
			lineKeys[line] = f.Key(c)
		}
	}

	dropped := 0
	log := logging.Component("codeview")
	for _, line := range pm.Lines() {
		msgs := pm.ByLine[line]
		key, ok := lineKeys[line]
		if !ok {
			dropped += len(msgs)
			log.Debug().
				Str("path", f.Path()).
				Int("line", line).
				Msg("dropping messages for line outside diff")
			continue
		}
		section.Widgets[key] = Widget{Key: key, Line: line, Messages: msgs}
	}

	return section, dropped
}

// highlightHunk tokenizes the hunk as one unit. On a line count mismatch the
// hunk falls back to plain text.
func highlightHunk(h diff.Hunk, language string) [][]highlight.Span {
	contents := make([]string, len(h.Changes))
	for i, c := range h.Changes {
		contents[i] = c.Content
	}

	if len(contents) == 0 {
		return [][]highlight.Span{}
	}

	text := strings.Join(contents, "\n") + "\n"
	out := highlight.SplitLines(highlight.FlattenWithDepth(highlight.Tokenize(text, language)))
	if len(out) == len(contents) {
		return out
	}

	logging.Component("codeview").Debug().
		Str("hunk", h.Header()).
		Msg("highlighted hunk does not line up, using plain text")
	return plainLines(contents)
}

// SelectedChange returns the position of the first selected row.
func (v DiffView) SelectedChange() (RowRef, bool) {
	for si, s := range v.Sections {
		for hi, h := range s.Hunks {
			for ri, r := range h.Rows {
				if r.Selected {
					return RowRef{Section: si, Hunk: hi, Row: ri}, true
				}
			}
		}
	}
	return RowRef{}, false
}

// WidgetCount returns the number of widgets across sections.
func (v DiffView) WidgetCount() int {
	n := 0
	for _, s := range v.Sections {
		n += len(s.Widgets)
	}
	return n
}

// AnnotatedIDs returns the keys of changes that carry widgets, in display
// order.
func (v DiffView) AnnotatedIDs() []string {
	var ids []string
	for _, s := range v.Sections {
		for _, h := range s.Hunks {
			for _, r := range h.Rows {
				if _, ok := s.Widgets[r.Key]; ok {
					ids = append(ids, r.Key)
				}
			}
		}
	}
	return ids
}
