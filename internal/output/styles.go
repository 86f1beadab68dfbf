package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: bundle paths, page paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreenCheck is used for the success checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorBoldRed is used for the failure cross (✖).
	ColorBoldRed = lipgloss.Color("204")

	// ColorYellow is used for skipped steps.
	ColorYellow = lipgloss.Color("220")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (bundle paths, page paths, roots).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Step outcome markers.
const (
	MarkSucceed = "✔"
	MarkFail    = "✖"
	MarkSkip    = "-"
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render(MarkSucceed)
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed).Render(MarkFail)
	return cross + " " + msg
}

// FormatSkip renders a dim marker with a message.
func FormatSkip(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorYellow).Render(MarkSkip) + " " + StyleDim.Render(msg)
}
