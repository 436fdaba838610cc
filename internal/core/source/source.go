// Package source splits file content into display lines.
package source

import "strings"

// Normalize converts "\r\n" line endings to "\n".
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// SplitLines splits text on "\n". A single trailing newline does not produce
// an extra empty line; blank lines elsewhere are kept. "\r\n" endings are
// normalized.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(Normalize(text), "\n")
	return strings.Split(text, "\n")
}
