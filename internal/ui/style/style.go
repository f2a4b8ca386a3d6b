// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Error, Subtle, etc.) rather than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette holds the ANSI-256 color numbers the semantic styles map to.
// Values can also be "bold" for bold-only styling.
type palette struct {
	Success   string
	Warning   string
	Error     string
	Bold      string
	Subtle    string
	Highlight string
}

func defaultPalette() palette {
	if termenv.HasDarkBackground() {
		return palette{
			Success:   "42",
			Warning:   "214",
			Error:     "196",
			Bold:      "bold",
			Subtle:    "245",
			Highlight: "81",
		}
	}
	return palette{
		Success:   "28",
		Warning:   "130",
		Error:     "124",
		Bold:      "bold",
		Subtle:    "243",
		Highlight: "25",
	}
}

var (
	enabled bool

	// Pre-created styles. Only used when enabled is true.
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	boldStyle      lipgloss.Style
	subtleStyle    lipgloss.Style
	highlightStyle lipgloss.Style
)

// Init initializes the style package with the given enabled state. It also
// respects the NO_COLOR and HERALD_NO_COLOR environment variables; if either
// is set (to any non-empty value), styling is disabled regardless of the
// enable parameter.
//
// Call once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("HERALD_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if enabled {
		initStyles(defaultPalette())
	}
}

// initStyles creates the lipgloss styles from the palette. ANSI 256 is
// forced regardless of TTY detection so both basic and extended colors work.
func initStyles(p palette) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(p.Success)
	warningStyle = makeStyle(p.Warning)
	errorStyle = makeStyle(p.Error)
	boldStyle = makeStyle(p.Bold)
	subtleStyle = makeStyle(p.Subtle)
	highlightStyle = makeStyle(p.Highlight)
}

func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

// Success styles text for successful operations.
func Success(text string) string {
	if !enabled {
		return text
	}
	return successStyle.Render(text)
}

// Warning styles text for warning messages.
func Warning(text string) string {
	if !enabled {
		return text
	}
	return warningStyle.Render(text)
}

// Error styles text for error messages.
func Error(text string) string {
	if !enabled {
		return text
	}
	return errorStyle.Render(text)
}

// Bold styles text for emphasis.
func Bold(text string) string {
	if !enabled {
		return text
	}
	return boldStyle.Render(text)
}

// Subtle styles text for less important or secondary information.
func Subtle(text string) string {
	if !enabled {
		return text
	}
	return subtleStyle.Render(text)
}

// Highlight styles text that should stand out without signaling an outcome.
func Highlight(text string) string {
	if !enabled {
		return text
	}
	return highlightStyle.Render(text)
}
