package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/pitwall/internal/f1"
)

// circuitState manages the cross-season lap-time comparison for one event.
// The comparison walks the race at the chosen event through the Source for
// every offered season, so already-cached years are free.
type circuitState struct {
	loading bool
	event   string
	stats   []CircuitYearStats
	err     error
}

// CircuitYearStats summarises the race lap-time distribution at one event
// for one season.
type CircuitYearStats struct {
	Year    int
	Laps    int
	Fastest time.Duration
	Median  time.Duration
	Slowest time.Duration
}

// initCircuit returns a tea.Cmd that fetches the race at one event for each
// year and summarises every season's lap times. Years without a race at the
// event (retrieval errors) are skipped; the comparison fails only if no year
// yields timed laps.
func initCircuit(source Source, event string, years []int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var (
			stats   []CircuitYearStats
			lastErr error
		)
		for _, year := range years {
			data, err := source.GetSession(ctx, f1.SessionID{Year: year, Event: event, Type: f1.Race})
			if err != nil {
				lastErr = err
				continue
			}
			if s, ok := lapTimeStats(year, data.Laps); ok {
				stats = append(stats, s)
			}
		}

		if len(stats) == 0 {
			if lastErr == nil {
				lastErr = fmt.Errorf("no race laps recorded at %s", event)
			}
			return CircuitMsg{Event: event, Err: lastErr}
		}
		return CircuitMsg{Event: event, Stats: stats}
	}
}

// lapTimeStats summarises the timed laps of one race, or false when the
// session recorded no times at all.
func lapTimeStats(year int, laps []f1.Lap) (CircuitYearStats, bool) {
	times := make([]time.Duration, 0, len(laps))
	for _, l := range laps {
		if l.Time > 0 {
			times = append(times, l.Time)
		}
	}
	if len(times) == 0 {
		return CircuitYearStats{}, false
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	median := times[len(times)/2]
	if len(times)%2 == 0 {
		median = (times[len(times)/2-1] + times[len(times)/2]) / 2
	}
	return CircuitYearStats{
		Year:    year,
		Laps:    len(times),
		Fastest: times[0],
		Median:  median,
		Slowest: times[len(times)-1],
	}, true
}

// CircuitChart renders per-season lap-time distributions at one event: one
// row per year with fastest/median/slowest columns and a range bar spanning
// the season's spread on a scale shared across all years.
func CircuitChart(event string, stats []CircuitYearStats, width int) string {
	if len(stats) == 0 {
		return fmt.Sprintf("No race laps recorded at %s", event)
	}

	lo, hi := stats[0].Fastest, stats[0].Slowest
	for _, s := range stats {
		if s.Fastest < lo {
			lo = s.Fastest
		}
		if s.Slowest > hi {
			hi = s.Slowest
		}
	}

	// Year plus three time columns ahead of the range bar.
	barWidth := width - 34
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s race lap times by season\n", event)
	for _, s := range stats {
		b.WriteByte('\n')
		bar := rangeBar(float64(lo), float64(hi),
			float64(s.Fastest), float64(s.Median), float64(s.Slowest), barWidth)
		fmt.Fprintf(&b, "%d  %8s %8s %8s  %s",
			s.Year,
			f1.FormatLapTime(s.Fastest),
			f1.FormatLapTime(s.Median),
			f1.FormatLapTime(s.Slowest),
			accentText.Render(bar))
	}

	b.WriteString("\n\n")
	b.WriteString(mutedText.Render("fastest / median / slowest, ├─┼─┤ spans the season's spread"))
	return b.String()
}

// rangeBar renders a [from, to] interval on a lo..hi scale of width cells,
// with end caps and a marker at mid.
func rangeBar(lo, hi, from, mid, to float64, width int) string {
	if width <= 0 || hi <= lo {
		return ""
	}
	cell := func(v float64) int {
		i := int((v - lo) / (hi - lo) * float64(width-1))
		if i < 0 {
			i = 0
		}
		if i >= width {
			i = width - 1
		}
		return i
	}

	out := []rune(strings.Repeat(" ", width))
	for i := cell(from); i <= cell(to); i++ {
		out[i] = '─'
	}
	out[cell(from)] = '├'
	out[cell(to)] = '┤'
	out[cell(mid)] = '┼'
	return strings.TrimRight(string(out), " ")
}
