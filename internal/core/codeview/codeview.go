// Package codeview merges file content or a parsed diff with analyzer
// messages into a render tree: highlighted rows, per-line annotation widgets
// and the file level messages shown above the body.
//
// Rendering is pure. The same input always produces the same view, and the
// selected row is derived only from the anchor and the row ids.
package codeview

import (
	"fmt"
	"strings"

	"github.com/colonyops/lintlens/internal/core/linter"
)

// ViewType selects how diff rows are laid out.
type ViewType string

const (
	ViewUnified ViewType = "unified"
	ViewSplit   ViewType = "split"
)

// ParseViewType parses a config or flag value. Unknown values are unified.
func ParseViewType(s string) ViewType {
	if ViewType(strings.ToLower(s)) == ViewSplit {
		return ViewSplit
	}
	return ViewUnified
}

// Toggle returns the other view type.
func (v ViewType) Toggle() ViewType {
	if v == ViewSplit {
		return ViewUnified
	}
	return ViewSplit
}

// Widget holds every message attached to one line or change.
type Widget struct {
	Key      string
	Line     int
	Messages []linter.Message
}

// LineID returns the anchor id of content line n.
func LineID(n int) string { return fmt.Sprintf("L%d", n) }

// MessagesID returns the id of the annotation block after content line n.
func MessagesID(n int) string { return fmt.Sprintf("line-%d-messages", n) }

// SelectedID strips the leading "#" from an anchor.
func SelectedID(anchor string) string {
	return strings.TrimPrefix(anchor, "#")
}

// IsSelected reports whether id is the element the anchor points at.
func IsSelected(id, anchor string) bool {
	sel := SelectedID(anchor)
	return sel != "" && id == sel
}
