// Package highlight turns source text into a nested token tree using chroma
// lexers and flattens that tree into styled spans that can be split by line.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/colonyops/lintlens/internal/core/logging"
)

// Token is either a leaf carrying literal text or a node carrying a class and
// child tokens.
type Token struct {
	Class    string
	Text     string
	Children []Token
}

// IsLeaf reports whether t carries text instead of children.
func (t Token) IsLeaf() bool { return t.Children == nil }

// String returns the concatenated text of t and its descendants.
func (t Token) String() string {
	if t.IsLeaf() {
		return t.Text
	}
	var b strings.Builder
	for _, c := range t.Children {
		b.WriteString(c.String())
	}
	return b.String()
}

// Tokenize highlights text with the lexer registered for language. The root
// node carries the class "language-<name>"; below it each chroma token is
// nested under its category, sub-category and type. Unknown languages and
// lexer failures yield a single leaf with text unchanged.
func Tokenize(text, language string) Token {
	plain := Token{Text: text}
	if language == "" || text == "" {
		return plain
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	log := logging.Component("highlight")

	it, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		log.Debug().Err(err).Str("language", language).Msg("tokenize failed, using plain text")
		return plain
	}
	tokens := it.Tokens()

	root := build(languageClass(lexer), tokens)

	// Lexers with EnsureNL append a newline the input never had.
	got := root.String()
	if got != text {
		if got == text+"\n" {
			trimTrailingNewline(&root)
		} else {
			log.Debug().Str("language", language).Msg("token stream does not match input, using plain text")
			return plain
		}
	}

	return root
}

func languageClass(lexer chroma.Lexer) string {
	name := strings.ToLower(lexer.Config().Name)
	return "language-" + strings.ReplaceAll(name, " ", "-")
}

// build nests tokens under their type hierarchy, merging runs of tokens that
// share a prefix into the same node.
func build(class string, tokens []chroma.Token) Token {
	root := Token{Class: class, Children: []Token{}}
	stack := []*Token{&root}

	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}

		chain := typeChain(tok.Type)

		// Pop until the open nodes are a prefix of chain.
		depth := 0
		for depth < len(chain) && depth+1 < len(stack) && stack[depth+1].Class == chain[depth] {
			depth++
		}
		stack = stack[:depth+1]

		for _, c := range chain[depth:] {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, Token{Class: c, Children: []Token{}})
			stack = append(stack, &top.Children[len(top.Children)-1])
		}

		top := stack[len(stack)-1]
		top.Children = append(top.Children, Token{Text: tok.Value})
	}

	return root
}

// typeChain returns the class path of t: category, sub-category, type, with
// repeats removed. Plain text has no path.
func typeChain(t chroma.TokenType) []string {
	if t <= 0 || t.InCategory(chroma.Text) {
		return nil
	}

	var chain []string
	for _, level := range []chroma.TokenType{t.Category(), t.SubCategory(), t} {
		if level == 0 {
			continue
		}
		name := className(level)
		if len(chain) > 0 && chain[len(chain)-1] == name {
			continue
		}
		chain = append(chain, name)
	}
	return chain
}

// className returns chroma's short CSS class for t ("k", "kc", "s2"),
// falling back to the type name.
func className(t chroma.TokenType) string {
	if c, ok := chroma.StandardTypes[t]; ok && c != "" {
		return c
	}
	return t.String()
}

func trimTrailingNewline(t *Token) {
	if t.IsLeaf() {
		t.Text = strings.TrimSuffix(t.Text, "\n")
		return
	}
	if len(t.Children) == 0 {
		return
	}
	last := &t.Children[len(t.Children)-1]
	trimTrailingNewline(last)
	if last.IsLeaf() && last.Text == "" {
		t.Children = t.Children[:len(t.Children)-1]
	}
}
