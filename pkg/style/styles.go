package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(17)

	// Text styles
	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Rule styles
var (
	PatternStyle = lipgloss.NewStyle().
			Foreground(PatternColor).
			Bold(true)

	FlagStyle = lipgloss.NewStyle().
			Foreground(FlagColor)

	LockedStyle = lipgloss.NewStyle().
			Foreground(LockedColor).
			Italic(true)

	DiffAddStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	DiffRemoveStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// Indicators. Built lazily so they pick up the configured color profile.
func SuccessIndicator() string { return SuccessStyle.Render("✓") }
func ErrorIndicator() string   { return ErrorStyle.Render("✗") }
func WarningIndicator() string { return WarningStyle.Render("!") }
func LockIndicator() string    { return LockedStyle.Render("🔒") }

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func Italic(s string) string {
	return lipgloss.NewStyle().Italic(true).Render(s)
}

func Underline(s string) string {
	return lipgloss.NewStyle().Underline(true).Render(s)
}
