package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/pitwall/internal/f1"
)

// CursorMarker is the prefix shown on the focused picker field.
const CursorMarker = "▸ "

// earliestSeason is the first year the picker offers; telemetry coverage
// upstream starts in 2018.
const earliestSeason = 2018

// Picker fields, top to bottom.
const (
	fieldYear = iota
	fieldEvent
	fieldType
	fieldCount
)

// pickerState manages the year/event/session selection form in the left pane.
type pickerState struct {
	years       []int
	yearCursor  int
	events      []f1.Event
	eventCursor int
	types       []f1.SessionType
	typeCursor  int
	field       int
	loading     bool
	err         error
}

// scheduleRequestMsg asks the model to fetch the schedule for a year.
// pickerState emits this when the year selection changes; Model.Update
// intercepts it and calls initSchedule.
type scheduleRequestMsg struct {
	Year int
}

// newPickerState returns a pickerState offering seasons from earliestSeason
// through season, newest first, in the loading state until the first
// schedule arrives.
func newPickerState(season int) pickerState {
	if season < earliestSeason {
		season = earliestSeason
	}
	years := make([]int, 0, season-earliestSeason+1)
	for y := season; y >= earliestSeason; y-- {
		years = append(years, y)
	}
	return pickerState{
		years:   years,
		types:   f1.SessionTypes(),
		loading: true,
	}
}

// initSchedule returns a tea.Cmd that fetches the schedule for a year
// asynchronously and wraps the result in a ScheduleMsg.
func initSchedule(source Source, year int) tea.Cmd {
	return func() tea.Msg {
		events, err := source.GetSchedule(context.Background(), year)
		return ScheduleMsg{Year: year, Events: events, Err: err}
	}
}

// Update processes messages for the picker state.
func (ps pickerState) Update(msg tea.Msg) (pickerState, tea.Cmd) {
	switch msg := msg.(type) {
	case ScheduleMsg:
		return ps.applySchedule(msg), nil

	case tea.KeyMsg:
		return ps.handleKey(msg)
	}

	return ps, nil
}

// applySchedule applies a fetched schedule (or error) to the picker,
// clearing the loading indicator and resetting the event cursor.
func (ps pickerState) applySchedule(msg ScheduleMsg) pickerState {
	if msg.Year != ps.Year() {
		// Stale response for a year the user has already moved away from.
		return ps
	}
	ps.loading = false
	if msg.Err != nil {
		ps.err = msg.Err
		ps.events = nil
		return ps
	}
	ps.err = nil
	ps.events = append([]f1.Event(nil), msg.Events...)
	ps.eventCursor = 0
	return ps
}

func (ps pickerState) handleKey(msg tea.KeyMsg) (pickerState, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		ps.field--
		if ps.field < 0 {
			ps.field = fieldCount - 1
		}
		return ps, nil

	case "down", "j":
		ps.field++
		if ps.field >= fieldCount {
			ps.field = 0
		}
		return ps, nil

	case "left", "h":
		return ps.cycle(-1)

	case "right", "l":
		return ps.cycle(1)

	case "enter":
		if id, ok := ps.SelectedID(); ok {
			return ps, func() tea.Msg { return LoadSessionMsg{ID: id} }
		}
		return ps, nil

	case "r":
		ps.loading = true
		ps.err = nil
		year := ps.Year()
		return ps, func() tea.Msg { return scheduleRequestMsg{Year: year} }
	}

	return ps, nil
}

// cycle moves the focused field's value by delta, wrapping around. Moving
// the year requests a schedule fetch for the newly selected season.
func (ps pickerState) cycle(delta int) (pickerState, tea.Cmd) {
	switch ps.field {
	case fieldYear:
		if len(ps.years) == 0 {
			return ps, nil
		}
		ps.yearCursor = wrap(ps.yearCursor+delta, len(ps.years))
		ps.loading = true
		ps.err = nil
		ps.events = nil
		year := ps.Year()
		return ps, func() tea.Msg { return scheduleRequestMsg{Year: year} }

	case fieldEvent:
		if len(ps.events) == 0 {
			return ps, nil
		}
		ps.eventCursor = wrap(ps.eventCursor+delta, len(ps.events))

	case fieldType:
		ps.typeCursor = wrap(ps.typeCursor+delta, len(ps.types))
	}
	return ps, nil
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Year returns the currently selected season.
func (ps pickerState) Year() int {
	if len(ps.years) == 0 {
		return 0
	}
	return ps.years[ps.yearCursor]
}

// SelectedID returns the session identifier for the current selection,
// or false while the schedule is loading or failed.
func (ps pickerState) SelectedID() (f1.SessionID, bool) {
	event, ok := ps.SelectedEvent()
	if !ok {
		return f1.SessionID{}, false
	}
	return f1.SessionID{
		Year:  ps.Year(),
		Event: event,
		Type:  ps.types[ps.typeCursor],
	}, true
}

// SelectedEvent returns the currently selected event name, or false while
// the schedule is loading or failed.
func (ps pickerState) SelectedEvent() (string, bool) {
	if ps.loading || ps.err != nil || len(ps.events) == 0 {
		return "", false
	}
	return ps.events[ps.eventCursor].Name, true
}

// View renders the picker form for the given width.
// spinnerView is the current spinner frame (empty when the spinner is inactive).
func (ps pickerState) View(width int, spinnerView string) string {
	event := "-"
	switch {
	case ps.loading:
		event = fmt.Sprintf("%s loading...", spinnerView)
	case ps.err != nil:
		event = errorText.Render("unavailable")
	case len(ps.events) > 0:
		event = ps.events[ps.eventCursor].Name
	}

	rows := []struct {
		label string
		value string
	}{
		{"Year", fmt.Sprintf("%d", ps.Year())},
		{"Event", event},
		{"Session", ps.types[ps.typeCursor].Name()},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == ps.field {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		line := fmt.Sprintf("%-8s ◂ %s ▸", row.label, row.value)
		if i == ps.field {
			b.WriteString(accentText.Render(truncate(line, width-2)))
		} else {
			b.WriteString(truncate(line, width-2))
		}
	}

	b.WriteString("\n\n")
	if ps.err != nil {
		b.WriteString(errorText.Render(truncate(fmt.Sprintf("Error: %s", ps.err), width)))
		b.WriteString("\n")
		b.WriteString(mutedText.Render("Press r to retry"))
	} else {
		b.WriteString(mutedText.Render("enter: load session"))
	}
	return b.String()
}
