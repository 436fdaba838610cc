package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/diff"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/styles"
	"github.com/colonyops/lintlens/internal/core/version"
)

const tabWidth = 4

// Header describes the file shown above a content view.
type Header struct {
	Path        string
	Size        int64
	MimeType    string
	SHA256      string
	DownloadURL string
	State       linter.LoadState
}

// HeaderFor builds the header for the selected file of v.
func HeaderFor(v version.Version, state linter.LoadState) Header {
	return Header{
		Path:        v.SelectedPath,
		Size:        v.File.Size,
		MimeType:    v.File.MimeType,
		SHA256:      v.File.SHA256,
		DownloadURL: v.File.DownloadURL,
		State:       state,
	}
}

// Document is a rendered view: display lines plus the line offset of every
// anchorable element.
type Document struct {
	Lines   []string
	Anchors map[string]int
}

func (d Document) String() string {
	return strings.Join(d.Lines, "\n")
}

// Line returns the offset of the element with id.
func (d Document) Line(id string) (int, bool) {
	n, ok := d.Anchors[id]
	return n, ok
}

type builder struct {
	doc   Document
	width int
	md    *Markdown
}

func newBuilder(width int, md *Markdown) *builder {
	if md == nil {
		md = NewMarkdown(false)
	}
	return &builder{
		doc:   Document{Anchors: map[string]int{}},
		width: max(width, 40),
		md:    md,
	}
}

func (b *builder) add(s string) {
	b.doc.Lines = append(b.doc.Lines, strings.Split(s, "\n")...)
}

func (b *builder) mark(id string) {
	if _, ok := b.doc.Anchors[id]; !ok {
		b.doc.Anchors[id] = len(b.doc.Lines)
	}
}

func (b *builder) divider() {
	b.add(styles.DividerStyle.Render(strings.Repeat("─", b.width)))
}

// RenderContent lays out a content view below its file header.
func RenderContent(h Header, v codeview.ContentView, width int, md *Markdown) Document {
	b := newBuilder(width, md)

	b.add(styles.HeaderPathStyle.Render(styles.IconForPath(h.Path) + h.Path))
	if meta := headerMeta(h); meta != "" {
		b.add(styles.HeaderMetaStyle.Render(meta))
	}
	b.add(stateLine(h.State))
	b.divider()
	b.globals(v.Global)

	gutter := len(strconv.Itoa(len(v.Rows)))
	for _, row := range v.Rows {
		b.mark(row.ID)
		b.add(contentRow(row, gutter))
		if row.MessagesID != "" {
			b.mark(row.MessagesID)
			b.messages(row.Messages)
		}
	}

	return b.doc
}

// RenderDiff lays out a diff view, one section per file.
func RenderDiff(v codeview.DiffView, state linter.LoadState, width int, md *Markdown) Document {
	b := newBuilder(width, md)

	b.add(stateLine(state))
	b.divider()
	b.globals(v.Global)

	if v.Empty {
		b.add(styles.MutedStyle.Render("No differences"))
		return b.doc
	}

	for _, s := range v.Sections {
		path := s.File.Path()
		b.add(styles.FileHeaderStyle.Render(styles.IconForPath(path)+path) + " " + sectionStats(s))
		for _, h := range s.Hunks {
			b.add(styles.HunkHeaderStyle.Render(h.Header))
			if v.ViewType == codeview.ViewSplit {
				b.splitHunk(s, h)
			} else {
				b.unifiedHunk(s, h)
			}
		}
	}

	return b.doc
}

// ErrorDocument renders a view that failed as a single error block.
func ErrorDocument(err error, width int) Document {
	b := newBuilder(width, nil)
	b.add(styles.ErrorTextStyle.Width(b.width).Render(err.Error()))
	return b.doc
}

func headerMeta(h Header) string {
	var parts []string
	if h.Size > 0 {
		parts = append(parts, humanize.Bytes(uint64(h.Size)))
	}
	if h.MimeType != "" {
		parts = append(parts, h.MimeType)
	}
	if h.SHA256 != "" {
		sum := h.SHA256
		if len(sum) > 12 {
			sum = sum[:12]
		}
		parts = append(parts, "sha256:"+sum)
	}
	if h.DownloadURL != "" {
		parts = append(parts, h.DownloadURL)
	}
	return strings.Join(parts, " · ")
}

func stateLine(s linter.LoadState) string {
	switch s.Status {
	case linter.StatusLoading:
		return styles.MutedStyle.Render("loading analyzer messages…")
	case linter.StatusFailed:
		return styles.ErrorTextStyle.Render(fmt.Sprintf("failed to load analyzer messages: %v (r to retry)", s.Err))
	case linter.StatusLoaded:
		count := 0
		if s.Index != nil {
			count = s.Index.Count()
		}
		return styles.MutedStyle.Render(humanize.Comma(int64(count)) + " analyzer " + plural(count, "message", "messages"))
	default:
		return styles.MutedStyle.Render("analyzer messages not loaded")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func sectionStats(s codeview.Section) string {
	return styles.StatsInsertStyle.Render(fmt.Sprintf("+++ %d", s.Insertions)) +
		styles.StatsDeleteStyle.Render(fmt.Sprintf("--- %d", s.Deletions))
}

func (b *builder) globals(msgs []linter.Message) {
	if len(msgs) == 0 {
		return
	}
	for _, msg := range msgs {
		b.add(styles.GlobalMessageStyle.Width(b.width - 2).Render(b.messageBody(msg, b.width-6)))
	}
	b.divider()
}

func (b *builder) messages(msgs []linter.Message) {
	for _, msg := range msgs {
		b.add(styles.MessageBoxStyle.Render(b.messageBody(msg, b.width-6)))
	}
}

func (b *builder) messageBody(msg linter.Message, width int) string {
	title := styles.SeverityStyle(string(msg.Type)).Render(strings.ToUpper(string(msg.Type))) + " " + msg.Message
	parts := []string{lipgloss.NewStyle().Width(width).Render(title)}

	if desc := b.md.Render(strings.Join(msg.Description, "\n\n"), width); desc != "" {
		parts = append(parts, desc)
	}
	if len(msg.Code) > 0 {
		parts = append(parts, styles.MessageCodeStyle.Render(strings.Join(msg.Code, " ")))
	}
	return strings.Join(parts, "\n")
}

func contentRow(row codeview.Row, gutter int) string {
	style := styles.GutterStyle
	switch {
	case row.Selected:
		style = styles.GutterSelectedStyle
	case len(row.Messages) > 0:
		style = styles.GutterAnnotated
	}
	return style.Width(gutter).Render(strconv.Itoa(row.Number)) + " │ " + renderSpans(row.Spans)
}

func (b *builder) unifiedHunk(s codeview.Section, h codeview.HunkView) {
	for _, r := range h.Rows {
		b.mark(r.Key)
		b.add(unifiedRow(r))
		b.widget(s, r.Key)
	}
}

func (b *builder) splitHunk(s codeview.Section, h codeview.HunkView) {
	half := (b.width - 1) / 2
	cell := lipgloss.NewStyle().Width(half).MaxWidth(half)

	for _, pair := range codeview.SplitRows(h) {
		if pair.Old != nil {
			b.mark(pair.Old.Key)
		}
		if pair.New != nil {
			b.mark(pair.New.Key)
		}

		left := cell.Render(splitCell(pair.Old, false))
		right := cell.Render(splitCell(pair.New, true))
		b.add(left + styles.DividerStyle.Render("│") + right)

		if pair.New != nil {
			b.widget(s, pair.New.Key)
		}
	}
}

func (b *builder) widget(s codeview.Section, key string) {
	w, ok := s.Widgets[key]
	if !ok {
		return
	}
	b.mark(key + "-messages")
	b.messages(w.Messages)
}

func lineNumber(n int) string {
	if n <= 0 {
		return "    "
	}
	return fmt.Sprintf("%4d", n)
}

func gutterFor(r codeview.DiffRow) lipgloss.Style {
	if r.Selected {
		return styles.GutterSelectedStyle
	}
	return styles.GutterStyle
}

func marker(t diff.ChangeType) string {
	switch t {
	case diff.ChangeInsert:
		return styles.InsertLineStyle.Render("+")
	case diff.ChangeDelete:
		return styles.DeleteLineStyle.Render("-")
	default:
		return " "
	}
}

func unifiedRow(r codeview.DiffRow) string {
	var oldN, newN int
	switch r.Change.Type {
	case diff.ChangeInsert:
		newN = r.Change.NewLine
	case diff.ChangeDelete:
		oldN = r.Change.OldLine
	default:
		oldN, newN = r.Change.OldLine, r.Change.NewLine
	}

	gutter := gutterFor(r).Render(lineNumber(oldN) + " " + lineNumber(newN))
	return gutter + " " + marker(r.Change.Type) + " " + renderSpans(r.Spans)
}

func splitCell(r *codeview.DiffRow, newSide bool) string {
	if r == nil {
		return ""
	}
	n := r.Change.OldLine
	if newSide {
		n = r.Change.NewLine
	}
	return gutterFor(*r).Render(lineNumber(n)) + " " + marker(r.Change.Type) + " " + renderSpans(r.Spans)
}

func renderSpans(spans []highlight.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		text := strings.ReplaceAll(s.Text, "\t", strings.Repeat(" ", tabWidth))
		sb.WriteString(styles.TokenStyle(s.Classes).Render(text))
	}
	return sb.String()
}
