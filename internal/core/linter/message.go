// Package linter indexes analyzer messages by file path and line, and tracks
// the per-version load state of analyzer reports.
package linter

import "fmt"

// Severity is the message type reported by the analyzer.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNotice  Severity = "notice"
)

// Location is where a message points inside its file: either the file as a
// whole (global) or a specific 1-based line.
type Location struct {
	line int
}

// Global returns a file level location.
func Global() Location { return Location{} }

// AtLine returns a location for line n. Values below 1 are treated as global.
func AtLine(n int) Location {
	if n < 1 {
		return Location{}
	}
	return Location{line: n}
}

// IsGlobal reports whether the location refers to the whole file.
func (l Location) IsGlobal() bool { return l.line == 0 }

// Line returns the 1-based line, or 0 for global locations.
func (l Location) Line() int { return l.line }

func (l Location) String() string {
	if l.IsGlobal() {
		return "global"
	}
	return fmt.Sprintf("line %d", l.line)
}

// Message is one analyzer finding.
type Message struct {
	UID         string
	Path        string
	Location    Location
	Column      int
	Type        Severity
	Message     string
	Description []string
	Code        []string
}
