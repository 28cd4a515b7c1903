package dashboard

import "testing"

func TestTab_NextWraps(t *testing.T) {
	tab := TabResults
	for i := 0; i < int(tabCount); i++ {
		tab = tab.next()
	}
	if tab != TabResults {
		t.Errorf("after %d next calls: tab = %v, want TabResults", tabCount, tab)
	}
}

func TestTab_PrevWraps(t *testing.T) {
	if got := TabResults.prev(); got != TabCircuit {
		t.Errorf("TabResults.prev() = %v, want TabCircuit", got)
	}
	if got := TabCircuit.next(); got != TabResults {
		t.Errorf("TabCircuit.next() = %v, want TabResults", got)
	}
}

func TestTab_Titles(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabResults, "Results"},
		{TabLaps, "Laps"},
		{TabStints, "Stints"},
		{TabTelemetry, "Telemetry"},
		{TabSeason, "Season"},
		{TabCircuit, "Circuit"},
	}
	for _, tt := range tests {
		if got := tt.tab.Title(); got != tt.want {
			t.Errorf("Title(%d) = %q, want %q", tt.tab, got, tt.want)
		}
	}
}

func TestRenderTabBar_ShowsAllTabs(t *testing.T) {
	bar := renderTabBar(TabLaps, 120)
	for _, want := range []string{"Results", "Laps", "Stints", "Telemetry", "Season", "Circuit"} {
		if !containsPlainText(bar, want) {
			t.Errorf("tab bar missing %q:\n%s", want, stripANSI(bar))
		}
	}
}
