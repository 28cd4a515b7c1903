package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/pitwall"
	"github.com/smileynet/pitwall/internal/api"
	"github.com/smileynet/pitwall/internal/cache"
	"github.com/smileynet/pitwall/internal/config"
	"github.com/smileynet/pitwall/internal/dashboard"
	"github.com/smileynet/pitwall/internal/f1"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for pitwall.
type CLI struct {
	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Dashboard DashboardCmd     `cmd:"" default:"1" help:"Open the interactive session dashboard."`
	Results   ResultsCmd       `cmd:"" help:"Print the classification of a session."`
	Laps      LapsCmd          `cmd:"" help:"Print lap times for a driver in a session."`
	Schedule  ScheduleCmd      `cmd:"" help:"Print the season calendar."`
	Fetch     FetchCmd         `cmd:"" help:"Warm the disk cache for a session."`
}

// plainWidth is the layout budget for tables printed outside the TUI.
const plainWidth = 100

// sessionGetter abstracts session retrieval for testing plain commands.
type sessionGetter interface {
	GetSession(ctx context.Context, id f1.SessionID) (*f1.SessionData, error)
}

// scheduleGetter abstracts schedule retrieval for testing plain commands.
type scheduleGetter interface {
	GetSchedule(ctx context.Context, year int) ([]f1.Event, error)
}

// loadConfig loads layered config from user and project paths with env
// overrides. A .env file in the working directory is applied first,
// best-effort, so PITWALL_* variables can live next to the project.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/pitwall/config.yaml"),
		".pitwall/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLoader constructs the retrieval stack: disk store, API client, and
// the memoizing loader in front of both. Enabling the store is the one
// fatal setup step; a cache directory that cannot be created or written
// halts startup.
func buildLoader(cfg *config.Config) (*cache.Loader, error) {
	store := cache.NewStore(cfg.Cache.Dir)
	if err := store.Enable(); err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.Runtime.Timeout))
	return cache.NewLoader(client, store), nil
}

// sessionID builds an identifier from command arguments.
func sessionID(year int, event, session string) (f1.SessionID, error) {
	st, err := f1.ParseSessionType(session)
	if err != nil {
		return f1.SessionID{}, err
	}
	return f1.SessionID{Year: year, Event: event, Type: st}, nil
}

// --- Dashboard command ---

// DashboardCmd opens the interactive dashboard TUI.
type DashboardCmd struct {
	Year    int  `help:"Season to open (default: configured season or current year)."`
	Offline bool `help:"Use the embedded demo season instead of the timing service."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the dashboard TUI.
func (d *DashboardCmd) Run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}

	var (
		source dashboard.Source
		season int
	)
	if d.Offline {
		// Demo mode runs entirely off embedded data; no config, no disk
		// cache, no network.
		source = pitwall.SampleSource{}
		season = pitwall.SampleSeason
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}

		loader, err := buildLoader(cfg)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}

		source = loader
		season = cfg.Season()
	}
	if d.Year != 0 {
		season = d.Year
	}

	m := dashboard.NewModel(
		dashboard.WithSource(source),
		dashboard.WithSeason(season),
	)

	prog := tea.NewProgram(m, tea.WithAltScreen())
	return d.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (d *DashboardCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("dashboard: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- Results command ---

// ResultsCmd prints the classification of one session.
type ResultsCmd struct {
	Year    int    `arg:"" help:"Championship year."`
	Event   string `arg:"" help:"Event name or round number."`
	Session string `arg:"" optional:"" default:"R" help:"Session type (FP1/FP2/FP3/Sprint/Q/R)."`
}

// Run executes the results command.
func (r *ResultsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}
	loader, err := buildLoader(cfg)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}
	return r.run(os.Stdout, loader)
}

// run fetches and prints the classification, enabling testable wiring.
func (r *ResultsCmd) run(w io.Writer, src sessionGetter) error {
	id, err := sessionID(r.Year, r.Event, r.Session)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := src.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}

	_, _ = fmt.Fprintf(w, "%s\n\n", id)
	_, _ = fmt.Fprintln(w, dashboard.ResultsTable(data, plainWidth))
	return nil
}

// --- Laps command ---

// LapsCmd prints lap times for one driver in a session.
type LapsCmd struct {
	Year    int    `arg:"" help:"Championship year."`
	Event   string `arg:"" help:"Event name or round number."`
	Session string `arg:"" optional:"" default:"R" help:"Session type (FP1/FP2/FP3/Sprint/Q/R)."`
	Driver  string `help:"Driver code (default: the session winner)." short:"d"`
}

// Run executes the laps command.
func (l *LapsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("laps: %w", err)
	}
	loader, err := buildLoader(cfg)
	if err != nil {
		return fmt.Errorf("laps: %w", err)
	}
	return l.run(os.Stdout, loader)
}

// run fetches and prints the lap table, enabling testable wiring.
func (l *LapsCmd) run(w io.Writer, src sessionGetter) error {
	id, err := sessionID(l.Year, l.Event, l.Session)
	if err != nil {
		return fmt.Errorf("laps: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := src.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("laps: %w", err)
	}

	driver := l.Driver
	if driver == "" && len(data.Results) > 0 {
		driver = data.Results[0].DriverCode
	}

	_, _ = fmt.Fprintf(w, "%s — %s\n\n", id, driver)
	_, _ = fmt.Fprintln(w, dashboard.LapTable(data, driver, plainWidth))
	return nil
}

// --- Schedule command ---

// ScheduleCmd prints the season calendar.
type ScheduleCmd struct {
	Year int `arg:"" help:"Championship year."`
}

// Run executes the schedule command.
func (s *ScheduleCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	loader, err := buildLoader(cfg)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return s.run(os.Stdout, loader)
}

// run fetches and prints the calendar, enabling testable wiring.
func (s *ScheduleCmd) run(w io.Writer, src scheduleGetter) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, err := src.GetSchedule(ctx, s.Year)
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	_, _ = fmt.Fprintf(w, "%d season — %d events\n\n", s.Year, len(events))
	for _, ev := range events {
		_, _ = fmt.Fprintf(w, "R%02d  %-28s %s, %s  (%s)\n",
			ev.Round, ev.Name, ev.Location, ev.Country, ev.StartDate.Format("Jan 02"))
	}
	return nil
}

// --- Fetch command ---

// FetchCmd warms the disk cache for one session.
type FetchCmd struct {
	Year    int    `arg:"" help:"Championship year."`
	Event   string `arg:"" help:"Event name or round number."`
	Session string `arg:"" optional:"" default:"R" help:"Session type (FP1/FP2/FP3/Sprint/Q/R)."`
	Force   bool   `help:"Drop any cached copy and refetch from the timing service."`
}

// refresher abstracts the loader surface fetch needs, for testing.
type refresher interface {
	sessionGetter
	Refresh(id f1.SessionID) error
}

// Run executes the fetch command.
func (f *FetchCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	loader, err := buildLoader(cfg)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	return f.run(os.Stdout, loader, cfg.Cache.Dir)
}

// run warms the cache for the session, enabling testable wiring.
func (f *FetchCmd) run(w io.Writer, src refresher, dir string) error {
	id, err := sessionID(f.Year, f.Event, f.Session)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if f.Force {
		if err := src.Refresh(id); err != nil {
			_, _ = fmt.Fprintf(w, "warning: dropping cached copy failed: %v\n", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := src.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Cached %s (%d drivers, %d laps) in %s\n",
		id, len(data.Results), len(data.Laps), dir)
	return nil
}

// Exit codes.
const (
	exitSuccess   = 0
	exitRetrieval = 1
	exitSetup     = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, api.ErrNotFound) || errors.Is(err, api.ErrUnavailable) {
		return exitRetrieval
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
