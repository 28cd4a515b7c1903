package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/pitwall/internal/f1"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// tabBarHeight is the number of lines consumed by the top tab bar.
const tabBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the session dashboard.
// It manages the tab bar, the picker pane, and the active tab view.
type Model struct {
	focus     Focus
	activeTab Tab
	width     int
	height    int

	source  Source
	picker  pickerState
	season  seasonState
	circuit circuitState
	cache   *sessionCache

	current   f1.SessionID // last session the user asked for
	data      *f1.SessionData
	loading   bool
	err       error
	driverIdx int // cursor into the classification for laps/telemetry

	help    help.Model
	spinner spinner.Model
}

// Option configures a Model.
type Option func(*Model)

// WithSource sets the session data source (normally a cache.Loader).
func WithSource(source Source) Option {
	return func(m *Model) { m.source = source }
}

// WithSeason sets the newest season offered by the picker.
func WithSeason(year int) Option {
	return func(m *Model) { m.picker = newPickerState(year) }
}

// NewModel creates a dashboard Model on the results tab with picker focus.
func NewModel(opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		focus:   PanePicker,
		picker:  newPickerState(earliestSeason),
		cache:   newSessionCache(),
		help:    help.New(),
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init fetches the schedule for the initial season.
func (m Model) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return tea.Batch(initSchedule(m.source, m.picker.Year()), m.spinner.Tick)
}

// initSession returns a tea.Cmd that retrieves a session asynchronously
// and wraps the result in a SessionMsg.
func initSession(source Source, id f1.SessionID) tea.Cmd {
	return func() tea.Msg {
		data, err := source.GetSession(context.Background(), id)
		return SessionMsg{ID: id, Data: data, Err: err}
	}
}

// Update handles incoming messages with focus-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScheduleMsg:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case scheduleRequestMsg:
		// Year changed: season standings and the circuit comparison belong
		// to the old year range now.
		m.season = seasonState{}
		m.circuit = circuitState{}
		if m.source == nil {
			return m, nil
		}
		return m, tea.Batch(initSchedule(m.source, msg.Year), m.spinner.Tick)

	case LoadSessionMsg:
		return m.loadSession(msg.ID)

	case SessionMsg:
		return m.applySession(msg), nil

	case SeasonMsg:
		if msg.Year == m.picker.Year() {
			m.season.loading = false
			m.season.year = msg.Year
			m.season.standings = msg.Standings
			m.season.err = msg.Err
		}
		return m, nil

	case CircuitMsg:
		if msg.Event == m.circuit.event {
			m.circuit.loading = false
			m.circuit.stats = msg.Stats
			m.circuit.err = msg.Err
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// loadSession starts retrieval for an identifier, serving the in-run cache
// first so re-selecting a session never refetches.
func (m Model) loadSession(id f1.SessionID) (Model, tea.Cmd) {
	m.current = id
	m.err = nil
	m.driverIdx = 0

	if data, ok := m.cache.Get(id); ok {
		m.data = data
		m.loading = false
		return m, nil
	}

	if m.source == nil {
		m.loading = false
		m.err = fmt.Errorf("no data source configured")
		return m, nil
	}

	m.data = nil
	m.loading = true
	return m, tea.Batch(initSession(m.source, id), m.spinner.Tick)
}

// applySession applies a retrieval result. Stale results for sessions the
// user has moved away from still populate the cache but do not replace the
// active view.
func (m Model) applySession(msg SessionMsg) Model {
	if msg.Err == nil && msg.Data != nil {
		m.cache.Set(msg.ID, msg.Data)
	}
	if msg.ID != m.current {
		return m
	}

	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		m.data = nil
		return m
	}
	m.err = nil
	m.data = msg.Data
	return m
}

// handleKey processes key messages with global and focus-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.focus == PanePicker {
			m.focus = PaneTabs
		} else {
			m.focus = PanePicker
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6":
		return m.switchTab(Tab(msg.String()[0] - '1'))
	}

	if m.focus == PanePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m.handleTabKey(msg)
}

// handleTabKey processes keys while the tab pane has focus.
func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "]", "right", "l":
		return m.switchTab(m.activeTab.next())

	case "[", "left", "h":
		return m.switchTab(m.activeTab.prev())

	case "d":
		if m.data != nil && len(m.data.Results) > 0 {
			m.driverIdx = (m.driverIdx + 1) % len(m.data.Results)
		}
		return m, nil

	case "r":
		if m.activeTab == TabSeason {
			return m.startSeason(true)
		}
		if m.activeTab == TabCircuit {
			return m.startCircuit(true)
		}
		if m.current != (f1.SessionID{}) {
			// Drop the in-run entry so the reload goes back to the loader.
			m.cache.Delete(m.current)
			return m.loadSession(m.current)
		}
		return m, nil
	}

	return m, nil
}

// switchTab activates a tab, kicking off season aggregation on first visit.
func (m Model) switchTab(t Tab) (Model, tea.Cmd) {
	if t < 0 || t >= tabCount {
		return m, nil
	}
	m.activeTab = t
	m.focus = PaneTabs
	if t == TabSeason {
		return m.startSeason(false)
	}
	if t == TabCircuit {
		return m.startCircuit(false)
	}
	return m, nil
}

// startSeason begins season aggregation for the picker's year if it is not
// already loaded (or force is set) and the schedule is available.
func (m Model) startSeason(force bool) (Model, tea.Cmd) {
	year := m.picker.Year()
	loaded := m.season.year == year && (len(m.season.standings) > 0 || m.season.err != nil)
	if m.season.loading || (loaded && !force) {
		return m, nil
	}
	if m.source == nil || len(m.picker.events) == 0 {
		return m, nil
	}

	m.season = seasonState{loading: true, year: year}
	return m, tea.Batch(initSeason(m.source, year, m.picker.events), m.spinner.Tick)
}

// startCircuit begins the cross-season comparison for the picker's event if
// it is not already loaded (or force is set) and the schedule is available.
func (m Model) startCircuit(force bool) (Model, tea.Cmd) {
	event, ok := m.picker.SelectedEvent()
	if !ok || m.source == nil {
		return m, nil
	}
	loaded := m.circuit.event == event && (len(m.circuit.stats) > 0 || m.circuit.err != nil)
	if m.circuit.loading || (loaded && !force) {
		return m, nil
	}

	years := make([]int, 0, m.picker.Year()-earliestSeason+1)
	for y := m.picker.Year(); y >= earliestSeason; y-- {
		years = append(years, y)
	}
	m.circuit = circuitState{loading: true, event: event}
	return m, tea.Batch(initCircuit(m.source, event, years), m.spinner.Tick)
}

// contentHeight returns the usable height for pane content, accounting for
// the tab bar, border chrome, and the help bar.
func (m Model) contentHeight() int {
	h := m.height - tabBarHeight - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the tab bar, the two panes, and the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	pickerWidth, tabsWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var pickerStyle, tabsStyle lipgloss.Style
	if m.focus == PanePicker {
		pickerStyle = FocusedBorder()
		tabsStyle = UnfocusedBorder()
	} else {
		pickerStyle = UnfocusedBorder()
		tabsStyle = FocusedBorder()
	}

	pickerStyle = pickerStyle.
		Width(pickerWidth - borderChrome).
		Height(contentHeight)
	tabsStyle = tabsStyle.
		Width(tabsWidth - borderChrome).
		Height(contentHeight)

	tabBar := renderTabBar(m.activeTab, m.width)
	pickerPane := pickerStyle.Render(m.picker.View(pickerWidth-borderChrome, m.spinner.View()))
	tabPane := tabsStyle.Render(m.viewTab(tabsWidth - borderChrome))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, pickerPane, tabPane)
	helpView := m.help.View(HelpBindings(m.focus))

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, panes, helpView)
}

// viewTab renders the active tab's content for the given width.
func (m Model) viewTab(width int) string {
	if m.activeTab == TabSeason {
		return m.viewSeason(width)
	}
	if m.activeTab == TabCircuit {
		return m.viewCircuit(width)
	}

	switch {
	case m.loading:
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.current)
	case m.err != nil:
		return errorText.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\n" +
			mutedText.Render("Press r to retry")
	case m.data == nil:
		return mutedText.Render("Select a session in the picker (enter to load)")
	}

	switch m.activeTab {
	case TabResults:
		return ResultsTable(m.data, width)
	case TabLaps:
		return LapChart(m.data, m.selectedDriver(0), width)
	case TabStints:
		return StintChart(m.data, width)
	case TabTelemetry:
		return TelemetryCompare(m.data, m.selectedDriver(0), m.selectedDriver(1), width)
	}
	return ""
}

// viewSeason renders the season tab, which has its own lifecycle.
func (m Model) viewSeason(width int) string {
	switch {
	case m.season.loading:
		return fmt.Sprintf("%s Aggregating %d season points...", m.spinner.View(), m.season.year)
	case m.season.err != nil:
		return errorText.Render(fmt.Sprintf("Error: %s", m.season.err)) + "\n\n" +
			mutedText.Render("Press r to retry")
	case len(m.season.standings) == 0:
		return mutedText.Render("Season standings load when the schedule is available")
	}
	return SeasonChart(m.season.year, m.season.standings, width)
}

// viewCircuit renders the circuit tab, which has its own lifecycle.
func (m Model) viewCircuit(width int) string {
	switch {
	case m.circuit.loading:
		return fmt.Sprintf("%s Comparing %s across seasons...", m.spinner.View(), m.circuit.event)
	case m.circuit.err != nil:
		return errorText.Render(fmt.Sprintf("Error: %s", m.circuit.err)) + "\n\n" +
			mutedText.Render("Press r to retry")
	case len(m.circuit.stats) == 0:
		return mutedText.Render("Circuit comparison loads when the schedule is available")
	}
	return CircuitChart(m.circuit.event, m.circuit.stats, width)
}

// selectedDriver returns the driver code at offset from the driver cursor,
// wrapping around the classification. Empty when no data is loaded.
func (m Model) selectedDriver(offset int) string {
	if m.data == nil || len(m.data.Results) == 0 {
		return ""
	}
	return m.data.Results[(m.driverIdx+offset)%len(m.data.Results)].DriverCode
}
