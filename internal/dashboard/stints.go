package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smileynet/pitwall/internal/f1"
)

// stint is one contiguous run on a tyre compound for one driver.
type stint struct {
	Driver   string
	Number   int
	Compound string
	StartLap int
	EndLap   int
}

// collectStints groups a session's laps into per-driver compound stints,
// ordered by finishing position then stint number. Laps without stint or
// compound data are skipped.
func collectStints(data *f1.SessionData) []stint {
	type key struct {
		driver string
		number int
	}
	ranges := make(map[key]*stint)

	for _, l := range data.Laps {
		if l.Stint == 0 || l.Compound == "" {
			continue
		}
		k := key{l.DriverCode, l.Stint}
		s, ok := ranges[k]
		if !ok {
			ranges[k] = &stint{
				Driver:   l.DriverCode,
				Number:   l.Stint,
				Compound: l.Compound,
				StartLap: l.Number,
				EndLap:   l.Number,
			}
			continue
		}
		if l.Number < s.StartLap {
			s.StartLap = l.Number
		}
		if l.Number > s.EndLap {
			s.EndLap = l.Number
		}
	}

	order := make(map[string]int, len(data.Results))
	for i, r := range data.Results {
		order[r.DriverCode] = i
	}

	stints := make([]stint, 0, len(ranges))
	for _, s := range ranges {
		stints = append(stints, *s)
	}
	sort.Slice(stints, func(i, j int) bool {
		if stints[i].Driver != stints[j].Driver {
			return order[stints[i].Driver] < order[stints[j].Driver]
		}
		return stints[i].Number < stints[j].Number
	})
	return stints
}

// StintChart renders tyre stints per driver as compound-colored bar
// segments proportional to the laps covered.
func StintChart(data *f1.SessionData, width int) string {
	if data == nil {
		return "No stint data"
	}
	stints := collectStints(data)
	if len(stints) == 0 {
		return "No stint data"
	}

	totalLaps := data.TotalLaps
	for _, s := range stints {
		if s.EndLap > totalLaps {
			totalLaps = s.EndLap
		}
	}

	// Bar budget: driver label (5) + lap count column.
	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	last := ""
	for _, s := range stints {
		if s.Driver != last {
			if last != "" {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%-5s", s.Driver)
			last = s.Driver
		}
		segment := float64(s.EndLap-s.StartLap+1) / float64(totalLaps)
		n := int(segment * float64(barWidth))
		if n < 1 {
			n = 1
		}
		b.WriteString(CompoundStyle(s.Compound).Render(strings.Repeat("█", n)))
	}

	b.WriteString("\n\n")
	b.WriteString(mutedText.Render(legend()))
	return b.String()
}

// legend returns the compound color legend line.
func legend() string {
	parts := make([]string, 0, len(compoundColors))
	for _, c := range []string{"SOFT", "MEDIUM", "HARD", "INTERMEDIATE", "WET"} {
		parts = append(parts, CompoundStyle(c).Render("█")+" "+c)
	}
	return strings.Join(parts, "  ")
}
