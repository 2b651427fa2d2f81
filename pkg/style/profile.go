package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorEnabled reports whether styled output should be written to f.
// NO_COLOR disables colors regardless of the terminal.
func ColorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(f)
}

// ConfigureOutput sets the lipgloss and pterm color state for output
// written to f.
func ConfigureOutput(f *os.File) {
	SetColor(ColorEnabled(f))
}

// SetColor turns styling on or off globally
func SetColor(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
	pterm.EnableColor()
}
