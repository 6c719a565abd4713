package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the formatter, the chat view and the entry forms.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Styles by role. OK marks inserted entries and stored secrets, Warn marks
// updates and empty results, Failed marks errors and skipped candidates.
var (
	StyleOK     = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleFailed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleTime   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleTitle  = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = StyleTitle.Bold(true)
)

// Header upper-cases text and underlines it to its rendered width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := StyleDim.Render(strings.Repeat("─", lipgloss.Width(title)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(title), rule)
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
