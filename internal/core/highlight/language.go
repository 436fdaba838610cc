package highlight

import (
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
)

// LanguageFromMimeType returns the highlighter language for a MIME type, or
// "" when none is registered. Parameters such as "; charset=utf-8" are
// ignored.
func LanguageFromMimeType(mime string) string {
	mime = strings.TrimSpace(strings.SplitN(mime, ";", 2)[0])
	if mime == "" || mime == "text/plain" {
		return ""
	}
	if lexer := lexers.MatchMimeType(mime); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// LanguageFromPath returns the highlighter language for a file name, or "".
func LanguageFromPath(p string) string {
	if p == "" {
		return ""
	}
	if lexer := lexers.Match(path.Base(p)); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// Resolver picks a language for a file, honoring configured glob overrides
// before MIME type and file name detection.
type Resolver struct {
	patterns  []string
	overrides map[string]string
}

// NewResolver returns a Resolver for the given glob -> language overrides.
// Patterns are tried in lexical order.
func NewResolver(overrides map[string]string) *Resolver {
	patterns := make([]string, 0, len(overrides))
	for p := range overrides {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return &Resolver{patterns: patterns, overrides: overrides}
}

// Resolve returns the language for a file at p with the given MIME type.
func (r *Resolver) Resolve(p, mime string) string {
	if r != nil {
		for _, pattern := range r.patterns {
			if ok, err := doublestar.Match(pattern, p); err == nil && ok {
				return r.overrides[pattern]
			}
		}
	}
	if lang := LanguageFromMimeType(mime); lang != "" {
		return lang
	}
	return LanguageFromPath(p)
}
