package styles

import "github.com/charmbracelet/lipgloss"

// tokenStyles maps chroma short classes to styles. Lookups walk from the
// innermost class outwards, so category entries ("k", "s") cover every type
// below them.
var tokenStyles map[string]lipgloss.Style

func buildTokenStyles(p Palette) {
	plain := lipgloss.NewStyle().Foreground(p.Foreground)
	tokenStyles = map[string]lipgloss.Style{
		"k":  lipgloss.NewStyle().Foreground(p.Accent),
		"kc": lipgloss.NewStyle().Foreground(p.Warning),
		"kt": lipgloss.NewStyle().Foreground(p.Secondary),
		"n":  plain,
		"nb": lipgloss.NewStyle().Foreground(p.Secondary),
		"nf": lipgloss.NewStyle().Foreground(p.Primary),
		"nc": lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		"nt": lipgloss.NewStyle().Foreground(p.Error),
		"na": lipgloss.NewStyle().Foreground(p.Warning),
		"l":  lipgloss.NewStyle().Foreground(p.Warning),
		"s":  lipgloss.NewStyle().Foreground(p.Success),
		"m":  lipgloss.NewStyle().Foreground(p.Warning),
		"o":  lipgloss.NewStyle().Foreground(p.Secondary),
		"p":  plain,
		"c":  lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		"gi": lipgloss.NewStyle().Foreground(p.Success),
		"gd": lipgloss.NewStyle().Foreground(p.Error),
		"gh": lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
	}
}

// TokenStyle returns the style for a span's class chain. Unknown chains are
// rendered unstyled.
func TokenStyle(classes []string) lipgloss.Style {
	for i := len(classes) - 1; i >= 0; i-- {
		if s, ok := tokenStyles[classes[i]]; ok {
			return s
		}
	}
	return lipgloss.NewStyle()
}
