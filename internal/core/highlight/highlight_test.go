package highlight

import (
	"slices"
	"testing"

	"github.com/colonyops/lintlens/internal/core/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_UnknownLanguageIsSingleLeaf(t *testing.T) {
	text := "whatever <b>this</b> is\n"

	for _, lang := range []string{"", "not-a-language"} {
		tree := Tokenize(text, lang)
		assert.True(t, tree.IsLeaf(), lang)
		assert.Equal(t, text, tree.Text)
	}
}

func TestTokenize_PreservesText(t *testing.T) {
	tests := []struct {
		lang string
		text string
	}{
		{lang: "JavaScript", text: "const a = 'x';\n\nfunction f() {\n  return a;\n}\n"},
		{lang: "JavaScript", text: "let b = 1"},
		{lang: "JSON", text: "{\"manifest_version\": 2}\n"},
		{lang: "CSS", text: "body { color: red; }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			tree := Tokenize(tt.text, tt.lang)
			require.False(t, tree.IsLeaf())
			assert.Equal(t, tt.text, tree.String())
		})
	}
}

func TestTokenize_NestsByTokenType(t *testing.T) {
	tree := Tokenize("const a = 1;\n", "javascript")
	assert.Equal(t, "language-javascript", tree.Class)

	spans := FlattenWithDepth(tree)
	idx := slices.IndexFunc(spans, func(s Span) bool { return s.Text == "const" })
	require.NotEqual(t, -1, idx, "keyword span present")

	kw := spans[idx]
	assert.Equal(t, "language-javascript", kw.Classes[0])
	assert.Equal(t, "k", kw.Classes[1], "keyword category wraps the keyword")
	assert.Equal(t, len(kw.Classes), kw.Depth)
}

func TestFlattenWithDepth(t *testing.T) {
	tree := Token{Class: "language-x", Children: []Token{
		{Text: "a "},
		{Class: "k", Children: []Token{
			{Text: "if"},
			{Class: "kd", Children: []Token{{Text: "var"}}},
		}},
		{Text: " b"},
	}}

	spans := FlattenWithDepth(tree)

	assert.Equal(t, []Span{
		{Text: "a ", Depth: 1, Classes: []string{"language-x"}},
		{Text: "if", Depth: 2, Classes: []string{"language-x", "k"}},
		{Text: "var", Depth: 3, Classes: []string{"language-x", "k", "kd"}},
		{Text: " b", Depth: 1, Classes: []string{"language-x"}},
	}, spans)
	assert.Equal(t, "kd", spans[2].Class())
}

func TestFlattenWithDepth_Leaf(t *testing.T) {
	spans := FlattenWithDepth(Token{Text: "plain"})
	assert.Equal(t, []Span{{Text: "plain", Depth: 0}}, spans)
	assert.Empty(t, spans[0].Class())

	assert.Empty(t, FlattenWithDepth(Token{Text: ""}))
}

func TestSplitLines(t *testing.T) {
	spans := []Span{
		{Text: "/* a\nb */", Depth: 2, Classes: []string{"language-x", "c"}},
		{Text: "\n", Depth: 1, Classes: []string{"language-x"}},
		{Text: "x", Depth: 1, Classes: []string{"language-x"}},
	}

	lines := SplitLines(spans)
	require.Len(t, lines, 3)

	assert.Equal(t, []Span{{Text: "/* a", Depth: 2, Classes: []string{"language-x", "c"}}}, lines[0])
	assert.Equal(t, []Span{{Text: "b */", Depth: 2, Classes: []string{"language-x", "c"}}}, lines[1])
	assert.Equal(t, "x", Plain(lines[2]))
}

func TestSplitLines_MatchesSourceLineCount(t *testing.T) {
	texts := []string{
		"",
		"a",
		"a\n",
		"a\n\nb\n",
		"const a = 1;\n\n// done\n",
		"\n",
	}

	for _, text := range texts {
		lines := SplitLines(FlattenWithDepth(Tokenize(text, "javascript")))
		want := source.SplitLines(text)

		require.Len(t, lines, len(want), "%q", text)
		for i := range want {
			assert.Equal(t, want[i], Plain(lines[i]), "%q line %d", text, i+1)
		}
	}
}

func TestLanguageFromMimeType(t *testing.T) {
	assert.Equal(t, "JavaScript", LanguageFromMimeType("application/javascript"))
	assert.Equal(t, "JSON", LanguageFromMimeType("application/json; charset=utf-8"))
	assert.Empty(t, LanguageFromMimeType("text/plain"))
	assert.Empty(t, LanguageFromMimeType("application/x-unknown-thing"))
	assert.Empty(t, LanguageFromMimeType(""))
}

func TestLanguageFromPath(t *testing.T) {
	assert.Equal(t, "JavaScript", LanguageFromPath("lib/react.js"))
	assert.Empty(t, LanguageFromPath(""))
}

func TestResolver(t *testing.T) {
	r := NewResolver(map[string]string{
		"**/*.jsm": "javascript",
		"vendor/**": "text",
	})

	assert.Equal(t, "javascript", r.Resolve("modules/a/b.jsm", ""))
	assert.Equal(t, "text", r.Resolve("vendor/lib.js", "application/javascript"), "override wins over MIME")
	assert.Equal(t, "JSON", r.Resolve("manifest.json", "application/json"))
	assert.Equal(t, "JavaScript", r.Resolve("lib/react.js", ""), "falls back to file name")

	var nilResolver *Resolver
	assert.Equal(t, "JavaScript", nilResolver.Resolve("x.js", ""))
}
