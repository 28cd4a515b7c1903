package dashboard

import (
	"fmt"

	"github.com/smileynet/pitwall/internal/f1"
)

// ResultsTable renders the session classification as a table. Race and
// sprint classifications include grid, points, and status columns; other
// sessions show position, driver, team, and best time. Exported so the
// plain-text results command shares the exact same shaping.
func ResultsTable(data *f1.SessionData, width int) string {
	if data == nil || len(data.Results) == 0 {
		return "No classified results"
	}

	if data.ID.Type == f1.Race || data.ID.Type == f1.Sprint {
		headers := []string{"POS", "DRIVER", "TEAM", "GRID", "GAP", "PTS", "STATUS"}
		rows := make([][]string, 0, len(data.Results))
		for _, r := range data.Results {
			rows = append(rows, []string{
				fmt.Sprintf("%d", r.Position),
				r.DriverCode,
				r.Team,
				fmt.Sprintf("%d", r.Grid),
				r.Gap,
				formatPoints(r.Points),
				r.Status,
			})
		}
		return renderTable(headers, rows, width)
	}

	headers := []string{"POS", "DRIVER", "TEAM", "TIME"}
	rows := make([][]string, 0, len(data.Results))
	for _, r := range data.Results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Position),
			r.DriverCode,
			r.Team,
			r.Gap,
		})
	}
	return renderTable(headers, rows, width)
}

// formatPoints renders championship points without a trailing ".0" for
// whole values; half points (shortened races) keep one decimal.
func formatPoints(p float64) string {
	if p == float64(int(p)) {
		return fmt.Sprintf("%d", int(p))
	}
	return fmt.Sprintf("%.1f", p)
}
