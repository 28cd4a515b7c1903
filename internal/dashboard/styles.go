package dashboard

import "github.com/charmbracelet/lipgloss"

// MinPickerWidth is the minimum character width for the picker pane.
const MinPickerWidth = 26

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}).
			Background(lipgloss.AdaptiveColor{Light: "4", Dark: "4"})

	tabInactiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	errorText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	accentText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	fastestText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5"))
)

// compoundColors maps tyre compounds to their traditional display colors.
var compoundColors = map[string]lipgloss.Color{
	"SOFT":         lipgloss.Color("1"),
	"MEDIUM":       lipgloss.Color("3"),
	"HARD":         lipgloss.Color("7"),
	"INTERMEDIATE": lipgloss.Color("2"),
	"WET":          lipgloss.Color("4"),
}

// CompoundStyle returns a style colored for the given tyre compound.
// Unknown compounds render muted.
func CompoundStyle(compound string) lipgloss.Style {
	if c, ok := compoundColors[compound]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return mutedText
}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})
}

// PaneWidths calculates the picker and tab pane widths from a total width.
// The picker gets 1/4 (minimum MinPickerWidth), the tab pane the rest.
func PaneWidths(totalWidth int) (picker, tabs int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	picker = totalWidth / 4
	if picker < MinPickerWidth {
		picker = MinPickerWidth
	}
	tabs = totalWidth - picker
	if tabs < 0 {
		tabs = 0
	}
	return picker, tabs
}
