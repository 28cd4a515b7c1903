package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/pitwall/internal/f1"
)

// seasonState manages the aggregated team points view. Aggregation walks
// every round of the season through the Source, so cached rounds are free
// and only unseen ones hit the network.
type seasonState struct {
	loading   bool
	year      int
	standings []TeamStanding
	err       error
}

// initSeason returns a tea.Cmd that fetches the race of every round in the
// schedule and aggregates team points. Rounds that have not happened yet
// (retrieval errors) are skipped; the aggregation fails only if no round
// yields results at all.
func initSeason(source Source, year int, events []f1.Event) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var (
			sessions []*f1.SessionData
			lastErr  error
		)
		for _, ev := range events {
			data, err := source.GetSession(ctx, f1.SessionID{Year: year, Event: ev.Name, Type: f1.Race})
			if err != nil {
				lastErr = err
				continue
			}
			sessions = append(sessions, data)
		}

		if len(sessions) == 0 {
			if lastErr == nil {
				lastErr = fmt.Errorf("no completed rounds in %d", year)
			}
			return SeasonMsg{Year: year, Err: lastErr}
		}
		return SeasonMsg{Year: year, Standings: ComputeStandings(sessions)}
	}
}

// ComputeStandings sums race points per team across sessions, sorted by
// points descending with team name as tiebreaker.
func ComputeStandings(sessions []*f1.SessionData) []TeamStanding {
	points := make(map[string]float64)
	for _, s := range sessions {
		for _, r := range s.Results {
			points[r.Team] += r.Points
		}
	}

	standings := make([]TeamStanding, 0, len(points))
	for team, pts := range points {
		standings = append(standings, TeamStanding{Team: team, Points: pts})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Team < standings[j].Team
	})
	return standings
}

// SeasonChart renders the team standings as a horizontal bar chart scaled
// to the leading team's points.
func SeasonChart(year int, standings []TeamStanding, width int) string {
	if len(standings) == 0 {
		return fmt.Sprintf("No completed rounds in %d", year)
	}

	teamWidth := 0
	for _, s := range standings {
		if len(s.Team) > teamWidth {
			teamWidth = len(s.Team)
		}
	}
	barWidth := width - teamWidth - 10
	if barWidth < 10 {
		barWidth = 10
	}
	max := standings[0].Points

	var b strings.Builder
	fmt.Fprintf(&b, "%d team points\n", year)
	for _, s := range standings {
		b.WriteByte('\n')
		frac := 0.0
		if max > 0 {
			frac = s.Points / max
		}
		fmt.Fprintf(&b, "%-*s %6s %s", teamWidth, s.Team, formatPoints(s.Points), accentText.Render(hbar(frac, barWidth)))
	}
	return b.String()
}
