// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	MutedStyle         lipgloss.Style
	ErrorTextStyle     lipgloss.Style

	// Viewer header.
	HeaderPathStyle  lipgloss.Style
	HeaderMetaStyle  lipgloss.Style
	StatsInsertStyle lipgloss.Style
	StatsDeleteStyle lipgloss.Style

	// Code rows.
	GutterStyle         lipgloss.Style
	GutterSelectedStyle lipgloss.Style
	GutterAnnotated     lipgloss.Style
	RowSelectedStyle    lipgloss.Style
	InsertLineStyle     lipgloss.Style
	DeleteLineStyle     lipgloss.Style
	HunkHeaderStyle     lipgloss.Style
	FileHeaderStyle     lipgloss.Style

	// Annotations.
	MessageBoxStyle    lipgloss.Style
	GlobalMessageStyle lipgloss.Style
	MessageCodeStyle   lipgloss.Style
	SeverityError      lipgloss.Style
	SeverityWarning    lipgloss.Style
	SeverityNotice     lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	HelpStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(p.Error)

	HeaderPathStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HeaderMetaStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	StatsInsertStyle = lipgloss.NewStyle().Foreground(p.Success)
	StatsDeleteStyle = lipgloss.NewStyle().Foreground(p.Error)

	GutterStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Align(lipgloss.Right)
	GutterSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Align(lipgloss.Right)
	GutterAnnotated = lipgloss.NewStyle().
		Foreground(p.Warning).
		Align(lipgloss.Right)
	RowSelectedStyle = lipgloss.NewStyle().
		Background(p.Surface)
	InsertLineStyle = lipgloss.NewStyle().Foreground(p.Success)
	DeleteLineStyle = lipgloss.NewStyle().Foreground(p.Error)
	HunkHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Faint(true)
	FileHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Bold(true).
		Padding(0, 1)

	MessageBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Warning).
		PaddingLeft(1).
		MarginLeft(2)
	GlobalMessageStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)
	MessageCodeStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	SeverityError = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	SeverityWarning = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	SeverityNotice = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.BorderForeground(p.Primary)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Error)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	buildTokenStyles(p)
}

// SetThemeByName activates a built-in theme. Unknown names keep the current
// theme and return false.
func SetThemeByName(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// SeverityStyle returns the style for an analyzer message type.
func SeverityStyle(severity string) lipgloss.Style {
	switch strings.ToLower(severity) {
	case "error":
		return SeverityError
	case "warning":
		return SeverityWarning
	default:
		return SeverityNotice
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
