// Package dashboard implements the tabbed session TUI: a picker pane for
// choosing (year, event, session type) and tab views rendering results,
// laps, stints, telemetry, season standings, and cross-season circuit
// comparisons for the chosen session.
package dashboard

import (
	"context"

	"github.com/smileynet/pitwall/internal/f1"
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PanePicker Focus = iota // Left pane (session picker) has focus.
	PaneTabs                // Right pane (active tab view) has focus.
)

// Source provides session data and schedules. Implemented by cache.Loader;
// tests substitute stubs.
type Source interface {
	GetSession(ctx context.Context, id f1.SessionID) (*f1.SessionData, error)
	GetSchedule(ctx context.Context, year int) ([]f1.Event, error)
}

// TeamStanding is one row of the aggregated season points table.
type TeamStanding struct {
	Team   string
	Points float64
}

// --- tea.Msg types ---

// ScheduleMsg carries the result of a GetSchedule call.
type ScheduleMsg struct {
	Year   int
	Events []f1.Event
	Err    error
}

// SessionMsg carries the result of a GetSession call.
type SessionMsg struct {
	ID   f1.SessionID
	Data *f1.SessionData
	Err  error
}

// SeasonMsg carries aggregated team points for a whole season.
type SeasonMsg struct {
	Year      int
	Standings []TeamStanding
	Err       error
}

// CircuitMsg carries per-season lap-time summaries for one event.
type CircuitMsg struct {
	Event string
	Stats []CircuitYearStats
	Err   error
}

// LoadSessionMsg signals the user has confirmed a picker selection.
// The picker emits this on enter; Model.Update intercepts it and starts
// the retrieval command.
type LoadSessionMsg struct {
	ID f1.SessionID
}
