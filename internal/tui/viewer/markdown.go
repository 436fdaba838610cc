package viewer

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/colonyops/lintlens/internal/core/logging"
	"github.com/colonyops/lintlens/internal/core/styles"
)

// Markdown renders message descriptions. Renderers are cached per width.
type Markdown struct {
	plain     bool
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown returns a description renderer. Plain output carries no color.
func NewMarkdown(plain bool) *Markdown {
	return &Markdown{plain: plain, renderers: map[int]*glamour.TermRenderer{}}
}

// Render renders text wrapped at width. When glamour fails the text is
// word wrapped as is.
func (m *Markdown) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	width = max(width, 20)

	r, err := m.renderer(width)
	if err == nil {
		var out string
		out, err = r.Render(text)
		if err == nil {
			return trimRendered(out)
		}
	}

	logging.Component("viewer").Debug().Err(err).Msg("markdown render failed, wrapping plain text")
	return lipgloss.NewStyle().Width(width).Render(text)
}

func (m *Markdown) renderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := m.renderers[width]; ok {
		return r, nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	}
	if m.plain {
		opts = append(opts, glamour.WithColorProfile(termenv.Ascii))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	m.renderers[width] = r
	return r, nil
}

// trimRendered drops the blank lines glamour puts around a document and the
// padding at the end of each line.
func trimRendered(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
