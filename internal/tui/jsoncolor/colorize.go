// Package jsoncolor renders JSON command output with theme colors.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/colonyops/lintlens/internal/core/styles"
)

// Colorize pretty-prints JSON bytes with theme-aware syntax coloring.
// Falls back to the raw string on invalid JSON.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	var out strings.Builder
	raw := buf.String()

	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case ch == '"':
			end := findStringEnd(raw, i)
			str := raw[i : end+1]

			// keys are followed by a colon
			rest := strings.TrimLeft(raw[end+1:], " \t")
			if strings.HasPrefix(rest, ":") {
				out.WriteString(styles.HeaderPathStyle.Render(str))
			} else {
				out.WriteString(styles.StatsInsertStyle.Render(str))
			}
			i = end + 1

		case ch == ':':
			out.WriteString(styles.MutedStyle.Render(":"))
			i++

		case ch >= '0' && ch <= '9' || ch == '-':
			end := i + 1
			for end < len(raw) && isNumberByte(raw[end]) {
				end++
			}
			out.WriteString(styles.SeverityWarning.Render(raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"), strings.HasPrefix(raw[i:], "false"):
			word := "true"
			if ch == 'f' {
				word = "false"
			}
			out.WriteString(styles.SeverityNotice.Render(word))
			i += len(word)

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(styles.ErrorTextStyle.Render("null"))
			i += 4

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func isNumberByte(b byte) bool {
	return b >= '0' && b <= '9' || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

// findStringEnd returns the index of the closing quote for a JSON string starting at pos.
func findStringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			return i
		}
	}
	return len(s) - 1
}
