package codeview

import (
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/logging"
	"github.com/colonyops/lintlens/internal/core/source"
)

// ContentInput is everything needed to render one file.
type ContentInput struct {
	Path     string
	Text     string
	Language string
	Index    *linter.Index // nil when the report is not fetched
	Anchor   string
}

// Row is one content line.
type Row struct {
	Number     int
	ID         string
	Spans      []highlight.Span
	Selected   bool
	Messages   []linter.Message
	MessagesID string // empty when the line has no messages
}

// ContentView is the render tree for content mode.
type ContentView struct {
	Path    string
	Global  []linter.Message
	Rows    []Row
	Dropped int // messages pointing past the end of the file
}

// RenderContent highlights the file and attaches each line's messages, in
// arrival order, right after the line.
func RenderContent(in ContentInput) ContentView {
	text := source.Normalize(in.Text)
	lines := source.SplitLines(text)
	spans := highlightLines(text, in.Language, lines)

	view := ContentView{
		Path: in.Path,
		Rows: make([]Row, 0, len(lines)),
	}

	sel := linter.Select(in.Index, in.Path)
	pm := sel.Messages
	view.Global = pm.Global

	for i := range lines {
		n := i + 1
		row := Row{
			Number:   n,
			ID:       LineID(n),
			Spans:    spans[i],
			Selected: IsSelected(LineID(n), in.Anchor),
		}
		if msgs := pm.ByLine[n]; len(msgs) > 0 {
			row.Messages = msgs
			row.MessagesID = MessagesID(n)
		}
		view.Rows = append(view.Rows, row)
	}

	if sel.Found {
		log := logging.Component("codeview")
		for _, line := range pm.Lines() {
			if line > len(lines) {
				view.Dropped += len(pm.ByLine[line])
				log.Debug().
					Str("path", in.Path).
					Int("line", line).
					Int("lines", len(lines)).
					Msg("dropping messages for line outside content")
			}
		}
	}

	return view
}

// highlightLines tokenizes text and splits it by line. If the highlighted
// lines do not line up with the source lines, plain text is used.
func highlightLines(text, language string, lines []string) [][]highlight.Span {
	out := highlight.SplitLines(highlight.FlattenWithDepth(highlight.Tokenize(text, language)))
	if len(out) == len(lines) {
		return out
	}

	logging.Component("codeview").Debug().
		Str("language", language).
		Int("want", len(lines)).
		Int("got", len(out)).
		Msg("highlighted line count mismatch, using plain text")

	return plainLines(lines)
}

func plainLines(lines []string) [][]highlight.Span {
	out := make([][]highlight.Span, len(lines))
	for i, l := range lines {
		if l != "" {
			out[i] = []highlight.Span{{Text: l}}
		}
	}
	return out
}

// SelectedRow returns the index of the selected row, or -1.
func (v ContentView) SelectedRow() int {
	for i, r := range v.Rows {
		if r.Selected {
			return i
		}
	}
	return -1
}

// AnnotatedIDs returns the ids of rows that carry messages, in order.
func (v ContentView) AnnotatedIDs() []string {
	var ids []string
	for _, r := range v.Rows {
		if len(r.Messages) > 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// WidgetCount returns the number of annotation blocks in the view.
func (v ContentView) WidgetCount() int {
	return len(v.AnnotatedIDs())
}
