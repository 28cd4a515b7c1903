// Package f1 defines the domain types for motorsport session data:
// session identifiers, classified results, laps, and telemetry traces.
package f1

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SessionType identifies a session within a race weekend.
type SessionType string

const (
	Practice1  SessionType = "FP1"
	Practice2  SessionType = "FP2"
	Practice3  SessionType = "FP3"
	Sprint     SessionType = "Sprint"
	Qualifying SessionType = "Q"
	Race       SessionType = "R"
)

// SessionTypes lists all session types in weekend order.
func SessionTypes() []SessionType {
	return []SessionType{Practice1, Practice2, Practice3, Sprint, Qualifying, Race}
}

// ParseSessionType maps common spellings ("R", "race", "Qualifying") to a
// SessionType. Unknown values return an error.
func ParseSessionType(s string) (SessionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fp1", "practice 1", "practice1":
		return Practice1, nil
	case "fp2", "practice 2", "practice2":
		return Practice2, nil
	case "fp3", "practice 3", "practice3":
		return Practice3, nil
	case "sprint", "s":
		return Sprint, nil
	case "q", "quali", "qualifying":
		return Qualifying, nil
	case "r", "race":
		return Race, nil
	}
	return "", fmt.Errorf("f1: unknown session type %q", s)
}

// Name returns the human-readable session name, e.g. "Race" for "R".
func (t SessionType) Name() string {
	switch t {
	case Practice1:
		return "Practice 1"
	case Practice2:
		return "Practice 2"
	case Practice3:
		return "Practice 3"
	case Sprint:
		return "Sprint"
	case Qualifying:
		return "Qualifying"
	case Race:
		return "Race"
	}
	return string(t)
}

// SessionID identifies one session: championship year, event (grand prix name
// or round number as a string), and session type. It is immutable once chosen
// and doubles as the cache key.
type SessionID struct {
	Year  int
	Event string
	Type  SessionType
}

// String returns a display form like "Monaco 2023 Race".
func (id SessionID) String() string {
	return fmt.Sprintf("%s %d %s", id.Event, id.Year, id.Type.Name())
}

// Key returns a stable filesystem-safe key for the identifier,
// e.g. "2023_monaco_r". Spaces and path separators are folded to underscores.
func (id SessionID) Key() string {
	event := strings.ToLower(id.Event)
	mapper := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}
	return fmt.Sprintf("%d_%s_%s", id.Year, strings.Map(mapper, event), strings.ToLower(string(id.Type)))
}

// Event is one entry of a season schedule.
type Event struct {
	Round     int       `json:"round"`     // Sequence number of the event within the season
	Name      string    `json:"name"`      // Informal event name, e.g. "Monaco"
	Location  string    `json:"location"`  // Locality of the circuit
	Country   string    `json:"country"`   // Country the event takes place in
	StartDate time.Time `json:"startDate"` // Scheduled start of the first session
}

// Result is one row of a session classification.
type Result struct {
	Position   int     `json:"position"`
	DriverCode string  `json:"driverCode"` // Three-letter abbreviation, e.g. "VER"
	DriverName string  `json:"driverName"`
	Team       string  `json:"team"`
	Grid       int     `json:"grid"`   // Starting position (races only)
	Points     float64 `json:"points"` // Championship points scored
	Status     string  `json:"status"` // "Finished", "+1 Lap", "Accident", ...
	Gap        string  `json:"gap"`    // Gap to the winner or best lap time
}

// Lap is one timed lap for one driver.
type Lap struct {
	DriverCode string          `json:"driverCode"`
	Number     int             `json:"number"`
	Time       time.Duration   `json:"time"`
	Sectors    []time.Duration `json:"sectors,omitempty"`
	Compound   string          `json:"compound,omitempty"` // Tyre compound, e.g. "SOFT"
	Stint      int             `json:"stint,omitempty"`
}

// TelemetrySample is one point of a telemetry trace along the lap distance.
type TelemetrySample struct {
	Distance float64 `json:"distance"` // Metres from the start line
	Speed    float64 `json:"speed"`    // km/h
	Throttle float64 `json:"throttle"` // Percent, 0-100
	Brake    float64 `json:"brake"`    // 0 or 1
}

// TelemetryTrace is the fastest-lap telemetry for one driver.
type TelemetryTrace struct {
	DriverCode string            `json:"driverCode"`
	Samples    []TelemetrySample `json:"samples"`
}

// SessionData is the immutable snapshot of everything retrieved for one
// session. The dashboard never mutates it, only re-renders it per tab.
type SessionData struct {
	ID        SessionID        `json:"id"`
	EventName string           `json:"eventName"`
	TotalLaps int              `json:"totalLaps"` // Planned laps (races only)
	Results   []Result         `json:"results"`
	Laps      []Lap            `json:"laps"`
	Telemetry []TelemetryTrace `json:"telemetry,omitempty"`
}

// Drivers returns the driver codes present in the classification, in
// finishing order.
func (d *SessionData) Drivers() []string {
	codes := make([]string, 0, len(d.Results))
	for _, r := range d.Results {
		codes = append(codes, r.DriverCode)
	}
	return codes
}

// LapsFor returns the laps for one driver ordered by lap number.
func (d *SessionData) LapsFor(driver string) []Lap {
	var laps []Lap
	for _, l := range d.Laps {
		if l.DriverCode == driver {
			laps = append(laps, l)
		}
	}
	sort.Slice(laps, func(i, j int) bool { return laps[i].Number < laps[j].Number })
	return laps
}

// FastestLap returns the fastest timed lap for one driver,
// or false if the driver set no time.
func (d *SessionData) FastestLap(driver string) (Lap, bool) {
	var best Lap
	found := false
	for _, l := range d.Laps {
		if l.DriverCode != driver || l.Time <= 0 {
			continue
		}
		if !found || l.Time < best.Time {
			best = l
			found = true
		}
	}
	return best, found
}

// TraceFor returns the telemetry trace for one driver, or false if absent.
func (d *SessionData) TraceFor(driver string) (TelemetryTrace, bool) {
	for _, t := range d.Telemetry {
		if t.DriverCode == driver {
			return t, true
		}
	}
	return TelemetryTrace{}, false
}

// FormatLapTime renders a lap duration as "1:23.456". Zero durations
// render as a dash.
func FormatLapTime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	mins := int(d.Minutes())
	rem := d - time.Duration(mins)*time.Minute
	return fmt.Sprintf("%d:%06.3f", mins, rem.Seconds())
}
