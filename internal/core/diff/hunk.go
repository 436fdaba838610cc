package diff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// ChangeType represents the type of a line in a hunk body.
type ChangeType int

const (
	ChangeNormal ChangeType = iota // Context line (starts with space)
	ChangeInsert                   // Addition line (starts with +)
	ChangeDelete                   // Deletion line (starts with -)
)

func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	default:
		return "normal"
	}
}

// Change is one line of a hunk body with its position on both sides.
type Change struct {
	Type    ChangeType
	OldLine int // 0 for inserts
	NewLine int // 0 for deletes
	Content string
}

// Hunk is a contiguous region of changes.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Section  string // optional text after the closing @@
	Changes  []Change
}

// Header renders the hunk's "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	if h.Section != "" {
		header += " " + h.Section
	}
	return header
}

func convertHunk(h *godiff.Hunk) (Hunk, error) {
	hunk := Hunk{
		OldStart: int(h.OrigStartLine),
		OldLines: int(h.OrigLines),
		NewStart: int(h.NewStartLine),
		NewLines: int(h.NewLines),
		Section:  h.Section,
	}

	changes, err := decodeBody(string(h.Body), hunk.OldStart, hunk.NewStart)
	if err != nil {
		return Hunk{}, fmt.Errorf("hunk %s: %w", hunk.Header(), err)
	}
	hunk.Changes = changes

	return hunk, nil
}

// decodeBody walks a hunk body and assigns old and new line numbers to each
// line, starting at the hunk header positions.
func decodeBody(body string, oldStart, newStart int) ([]Change, error) {
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return []Change{}, nil
	}

	lines := strings.Split(body, "\n")
	changes := make([]Change, 0, len(lines))
	oldLine, newLine := oldStart, newStart

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		// Some editors strip the single space from blank context lines.
		if line == "" {
			line = " "
		}

		prefix := line[0]
		content := line[1:]

		switch prefix {
		case '+':
			changes = append(changes, Change{Type: ChangeInsert, NewLine: newLine, Content: content})
			newLine++

		case '-':
			changes = append(changes, Change{Type: ChangeDelete, OldLine: oldLine, Content: content})
			oldLine++

		case ' ':
			changes = append(changes, Change{Type: ChangeNormal, OldLine: oldLine, NewLine: newLine, Content: content})
			oldLine++
			newLine++

		case '\\':
			// "\ No newline at end of file"
			continue

		default:
			return nil, fmt.Errorf("unexpected line prefix %q", prefix)
		}
	}

	return changes, nil
}

// FlattenHunkChanges concatenates the changes of every hunk in order.
func FlattenHunkChanges(hunks []Hunk) []Change {
	n := 0
	for _, h := range hunks {
		n += len(h.Changes)
	}

	out := make([]Change, 0, n)
	for _, h := range hunks {
		out = append(out, h.Changes...)
	}
	return out
}

// ChangeKey derives a key for c that is unique within one file: "I<new>" for
// inserts, "D<old>" for deletes and "N<old>" for normal lines.
func ChangeKey(c Change) string {
	switch c.Type {
	case ChangeInsert:
		return fmt.Sprintf("I%d", c.NewLine)
	case ChangeDelete:
		return fmt.Sprintf("D%d", c.OldLine)
	default:
		return fmt.Sprintf("N%d", c.OldLine)
	}
}

// Stats counts insertions and deletions across hunks.
func Stats(hunks []Hunk) (insertions, deletions int) {
	for _, h := range hunks {
		for _, c := range h.Changes {
			switch c.Type {
			case ChangeInsert:
				insertions++
			case ChangeDelete:
				deletions++
			}
		}
	}
	return insertions, deletions
}

// AnnotationLine returns the line a message for c attaches to, and false for
// deletes which have no line in the new file.
func AnnotationLine(c Change) (int, bool) {
	if c.Type == ChangeDelete {
		return 0, false
	}
	return c.NewLine, true
}
