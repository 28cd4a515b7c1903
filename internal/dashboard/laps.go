package dashboard

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/smileynet/pitwall/internal/f1"
)

// lapBarWidth is the cell budget for the delta bar in the lap chart.
const lapBarWidth = 30

// LapChart renders one driver's lap times as a bar chart of deltas to their
// fastest lap: the fastest lap shows a marker, slower laps grow a bar
// proportional to the gap. Exported for the plain-text laps command.
func LapChart(data *f1.SessionData, driver string, width int) string {
	if data == nil {
		return "No lap data"
	}
	laps := data.LapsFor(driver)
	if len(laps) == 0 {
		return fmt.Sprintf("No laps recorded for %s", driver)
	}

	fastest, ok := data.FastestLap(driver)
	if !ok {
		return fmt.Sprintf("No timed laps for %s", driver)
	}
	slowest := fastest.Time
	for _, l := range laps {
		if l.Time > slowest {
			slowest = l.Time
		}
	}
	spread := slowest - fastest.Time

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d laps, fastest %s\n",
		driver, len(laps), accentText.Render(f1.FormatLapTime(fastest.Time)))

	for _, l := range laps {
		b.WriteByte('\n')
		if l.Time <= 0 {
			fmt.Fprintf(&b, "L%02d  %s", l.Number, mutedText.Render("no time"))
			continue
		}

		frac := 0.0
		if spread > 0 {
			frac = float64(l.Time-fastest.Time) / float64(spread)
		}
		if l.Number == fastest.Number {
			// Style the marker only when the whole line fits; truncation
			// would otherwise cut into the escape sequences.
			plain := fmt.Sprintf("L%02d  %s ◆ fastest", l.Number, f1.FormatLapTime(l.Time))
			if runewidth.StringWidth(plain) > width {
				b.WriteString(truncate(plain, width))
			} else {
				fmt.Fprintf(&b, "L%02d  %s %s", l.Number, f1.FormatLapTime(l.Time), fastestText.Render("◆ fastest"))
			}
		} else {
			line := fmt.Sprintf("L%02d  %s %s", l.Number, f1.FormatLapTime(l.Time), hbar(frac, lapBarWidth))
			b.WriteString(truncate(line, width))
		}
	}
	return b.String()
}

// LapTable renders one driver's laps with sectors and compound, used by the
// plain-text laps command.
func LapTable(data *f1.SessionData, driver string, width int) string {
	if data == nil {
		return "No lap data"
	}
	laps := data.LapsFor(driver)
	if len(laps) == 0 {
		return fmt.Sprintf("No laps recorded for %s", driver)
	}

	headers := []string{"LAP", "TIME", "S1", "S2", "S3", "TYRE"}
	rows := make([][]string, 0, len(laps))
	for _, l := range laps {
		row := []string{
			fmt.Sprintf("%d", l.Number),
			f1.FormatLapTime(l.Time),
			"-", "-", "-",
			l.Compound,
		}
		for i, s := range l.Sectors {
			if i > 2 {
				break
			}
			row[2+i] = fmt.Sprintf("%.3f", s.Seconds())
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, width)
}
