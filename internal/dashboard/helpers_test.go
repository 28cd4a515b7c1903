package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/pitwall/internal/f1"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. It returns all resulting messages. Spinner ticks are skipped
// to avoid infinite recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c != nil {
				result := c()
				// Skip spinner ticks to avoid recursion.
				if _, isTick := result.(spinner.TickMsg); !isTick {
					msgs = append(msgs, result)
				}
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// stubSource serves canned sessions and schedules for model tests.
type stubSource struct {
	sessions     map[string]*f1.SessionData
	events       []f1.Event
	sessionErr   error
	scheduleErr  error
	sessionCalls int
}

func (s *stubSource) GetSession(_ context.Context, id f1.SessionID) (*f1.SessionData, error) {
	s.sessionCalls++
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	if data, ok := s.sessions[id.Key()]; ok {
		return data, nil
	}
	return nil, errors.New("no such session")
}

func (s *stubSource) GetSchedule(_ context.Context, _ int) ([]f1.Event, error) {
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return s.events, nil
}

func monacoID() f1.SessionID {
	return f1.SessionID{Year: 2023, Event: "Monaco", Type: f1.Race}
}

// raceFixture builds a small but complete race session: five classified
// drivers, laps with stints for the top two, telemetry for the top two.
func raceFixture() *f1.SessionData {
	lap := func(driver string, n int, ms int64, compound string, stint int) f1.Lap {
		return f1.Lap{
			DriverCode: driver,
			Number:     n,
			Time:       time.Duration(ms) * time.Millisecond,
			Compound:   compound,
			Stint:      stint,
		}
	}
	return &f1.SessionData{
		ID:        monacoID(),
		EventName: "Monaco",
		TotalLaps: 6,
		Results: []f1.Result{
			{Position: 1, DriverCode: "VER", DriverName: "Max Verstappen", Team: "Red Bull", Grid: 1, Points: 25, Status: "Finished", Gap: "1:02:33.184"},
			{Position: 2, DriverCode: "ALO", DriverName: "Fernando Alonso", Team: "Aston Martin", Grid: 2, Points: 18, Status: "Finished", Gap: "+27.921"},
			{Position: 3, DriverCode: "OCO", DriverName: "Esteban Ocon", Team: "Alpine", Grid: 3, Points: 15, Status: "Finished", Gap: "+36.990"},
			{Position: 4, DriverCode: "HAM", DriverName: "Lewis Hamilton", Team: "Mercedes", Grid: 5, Points: 12, Status: "Finished", Gap: "+39.062"},
			{Position: 5, DriverCode: "RUS", DriverName: "George Russell", Team: "Mercedes", Grid: 8, Points: 10, Status: "+1 Lap", Gap: "+56.284"},
		},
		Laps: []f1.Lap{
			lap("VER", 1, 78421, "MEDIUM", 1),
			lap("VER", 2, 76884, "MEDIUM", 1),
			lap("VER", 3, 76512, "MEDIUM", 1),
			lap("VER", 4, 79934, "HARD", 2),
			lap("VER", 5, 76102, "HARD", 2),
			lap("VER", 6, 75631, "HARD", 2),
			lap("ALO", 1, 79102, "HARD", 1),
			lap("ALO", 2, 77310, "HARD", 1),
			lap("ALO", 3, 77048, "HARD", 1),
			lap("ALO", 4, 80412, "MEDIUM", 2),
			lap("ALO", 5, 76440, "MEDIUM", 2),
			lap("ALO", 6, 76205, "MEDIUM", 2),
		},
		Telemetry: []f1.TelemetryTrace{
			{DriverCode: "VER", Samples: []f1.TelemetrySample{
				{Distance: 0, Speed: 281, Throttle: 100, Brake: 0},
				{Distance: 300, Speed: 211, Throttle: 40, Brake: 1},
				{Distance: 600, Speed: 98, Throttle: 20, Brake: 0},
				{Distance: 900, Speed: 208, Throttle: 100, Brake: 0},
			}},
			{DriverCode: "ALO", Samples: []f1.TelemetrySample{
				{Distance: 0, Speed: 278, Throttle: 100, Brake: 0},
				{Distance: 300, Speed: 215, Throttle: 45, Brake: 1},
				{Distance: 600, Speed: 101, Throttle: 25, Brake: 0},
				{Distance: 900, Speed: 204, Throttle: 100, Brake: 0},
			}},
		},
	}
}

// monacoSchedule is a two-round season calendar.
func monacoSchedule() []f1.Event {
	return []f1.Event{
		{Round: 1, Name: "Bahrain", Location: "Sakhir", Country: "Bahrain"},
		{Round: 2, Name: "Monaco", Location: "Monte Carlo", Country: "Monaco"},
	}
}

// keyRunes builds a rune key message, e.g. keyRunes("r").
func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
