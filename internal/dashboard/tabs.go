package dashboard

import "github.com/charmbracelet/lipgloss"

// Tab identifies one of the dashboard's presentation views.
type Tab int

const (
	TabResults Tab = iota
	TabLaps
	TabStints
	TabTelemetry
	TabSeason
	TabCircuit

	tabCount
)

// Title returns the tab's display name.
func (t Tab) Title() string {
	switch t {
	case TabResults:
		return "Results"
	case TabLaps:
		return "Laps"
	case TabStints:
		return "Stints"
	case TabTelemetry:
		return "Telemetry"
	case TabSeason:
		return "Season"
	case TabCircuit:
		return "Circuit"
	}
	return "?"
}

// next returns the following tab, wrapping around.
func (t Tab) next() Tab {
	return (t + 1) % tabCount
}

// prev returns the preceding tab, wrapping around.
func (t Tab) prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// renderTabBar renders the top tab bar with the active tab highlighted.
func renderTabBar(active Tab, width int) string {
	parts := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == active {
			parts = append(parts, tabActiveStyle.Render(t.Title()))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.Title()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
