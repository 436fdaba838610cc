package highlight

import "strings"

// Span is a run of text with the depth and class chain of the nodes that
// enclose it.
type Span struct {
	Text    string
	Depth   int
	Classes []string
}

// Class returns the innermost class of the span, or "".
func (s Span) Class() string {
	if len(s.Classes) == 0 {
		return ""
	}
	return s.Classes[len(s.Classes)-1]
}

// FlattenWithDepth walks tree depth first. Every node opens a boundary one
// level deeper tagged with its class; leaves emit their text at the current
// depth. Sibling order is preserved.
func FlattenWithDepth(tree Token) []Span {
	return flatten(tree, 0, nil, nil)
}

func flatten(t Token, depth int, classes []string, out []Span) []Span {
	if t.IsLeaf() {
		if t.Text == "" {
			return out
		}
		return append(out, Span{
			Text:    t.Text,
			Depth:   depth,
			Classes: append([]string(nil), classes...),
		})
	}

	inner := append(append([]string(nil), classes...), t.Class)
	for _, c := range t.Children {
		out = flatten(c, depth+1, inner, out)
	}
	return out
}

// SplitLines breaks spans at newlines so every returned line holds only the
// spans (or span halves) that belong to it. Depth and classes are kept on
// both sides of a split. The line count matches source.SplitLines for the
// same text.
func SplitLines(spans []Span) [][]Span {
	lines := [][]Span{{}}
	total := 0

	for _, s := range spans {
		total += len(s.Text)
		parts := strings.Split(s.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []Span{})
			}
			if part == "" {
				continue
			}
			cur := len(lines) - 1
			lines[cur] = append(lines[cur], Span{Text: part, Depth: s.Depth, Classes: s.Classes})
		}
	}

	if total == 0 {
		return [][]Span{}
	}

	// A trailing newline does not open another line.
	if last := spans[len(spans)-1]; strings.HasSuffix(last.Text, "\n") && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Plain returns the text of a line of spans.
func Plain(line []Span) string {
	var b strings.Builder
	for _, s := range line {
		b.WriteString(s.Text)
	}
	return b.String()
}
