package f1

import (
	"testing"
	"time"
)

func TestParseSessionType(t *testing.T) {
	tests := []struct {
		in   string
		want SessionType
	}{
		{in: "R", want: Race},
		{in: "race", want: Race},
		{in: "Race", want: Race},
		{in: "q", want: Qualifying},
		{in: "Qualifying", want: Qualifying},
		{in: "quali", want: Qualifying},
		{in: "sprint", want: Sprint},
		{in: "s", want: Sprint},
		{in: "FP1", want: Practice1},
		{in: "practice 2", want: Practice2},
		{in: " fp3 ", want: Practice3},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSessionType(tt.in)
			if err != nil {
				t.Fatalf("ParseSessionType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSessionType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSessionType_Unknown(t *testing.T) {
	if _, err := ParseSessionType("warmup"); err == nil {
		t.Error("ParseSessionType(warmup) should return error")
	}
	if _, err := ParseSessionType(""); err == nil {
		t.Error("ParseSessionType(empty) should return error")
	}
}

func TestSessionID_Key(t *testing.T) {
	tests := []struct {
		name string
		id   SessionID
		want string
	}{
		{
			name: "simple",
			id:   SessionID{Year: 2023, Event: "Monaco", Type: Race},
			want: "2023_monaco_r",
		},
		{
			name: "spaces folded",
			id:   SessionID{Year: 2024, Event: "Saudi Arabia", Type: Qualifying},
			want: "2024_saudi_arabia_q",
		},
		{
			name: "path separators folded",
			id:   SessionID{Year: 2023, Event: "../etc/passwd", Type: Race},
			want: "2023____etc_passwd_r",
		},
		{
			name: "round number as event",
			id:   SessionID{Year: 2023, Event: "7", Type: Sprint},
			want: "2023_7_sprint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionID_String(t *testing.T) {
	id := SessionID{Year: 2023, Event: "Monaco", Type: Race}
	if got := id.String(); got != "Monaco 2023 Race" {
		t.Errorf("String() = %q, want %q", got, "Monaco 2023 Race")
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "typical lap", d: 83456 * time.Millisecond, want: "1:23.456"},
		{name: "over two minutes", d: 2*time.Minute + 5*time.Second, want: "2:05.000"},
		{name: "sub minute", d: 59999 * time.Millisecond, want: "0:59.999"},
		{name: "zero is dash", d: 0, want: "-"},
		{name: "negative is dash", d: -time.Second, want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLapTime(tt.d); got != tt.want {
				t.Errorf("FormatLapTime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func sessionFixture() *SessionData {
	return &SessionData{
		ID:        SessionID{Year: 2023, Event: "Monaco", Type: Race},
		EventName: "Monaco",
		Results: []Result{
			{Position: 1, DriverCode: "VER", Team: "Red Bull", Points: 25},
			{Position: 2, DriverCode: "ALO", Team: "Aston Martin", Points: 18},
		},
		Laps: []Lap{
			{DriverCode: "VER", Number: 2, Time: 76 * time.Second},
			{DriverCode: "VER", Number: 1, Time: 78 * time.Second},
			{DriverCode: "VER", Number: 3, Time: 0}, // in-lap, no time
			{DriverCode: "ALO", Number: 1, Time: 77 * time.Second},
		},
		Telemetry: []TelemetryTrace{
			{DriverCode: "VER", Samples: []TelemetrySample{{Distance: 0, Speed: 280}}},
		},
	}
}

func TestSessionData_Drivers(t *testing.T) {
	data := sessionFixture()

	got := data.Drivers()
	if len(got) != 2 || got[0] != "VER" || got[1] != "ALO" {
		t.Errorf("Drivers() = %v, want [VER ALO]", got)
	}
}

func TestSessionData_LapsFor(t *testing.T) {
	data := sessionFixture()

	// Laps come back ordered by lap number regardless of input order.
	laps := data.LapsFor("VER")
	if len(laps) != 3 {
		t.Fatalf("LapsFor(VER) len = %d, want 3", len(laps))
	}
	for i, l := range laps {
		if l.Number != i+1 {
			t.Errorf("laps[%d].Number = %d, want %d", i, l.Number, i+1)
		}
	}

	if laps := data.LapsFor("HAM"); len(laps) != 0 {
		t.Errorf("LapsFor(HAM) len = %d, want 0", len(laps))
	}
}

func TestSessionData_FastestLap(t *testing.T) {
	data := sessionFixture()

	// Untimed laps are ignored when picking the fastest.
	best, ok := data.FastestLap("VER")
	if !ok {
		t.Fatal("FastestLap(VER) ok = false, want true")
	}
	if best.Number != 2 {
		t.Errorf("fastest lap number = %d, want 2", best.Number)
	}

	if _, ok := data.FastestLap("HAM"); ok {
		t.Error("FastestLap(HAM) ok = true, want false")
	}
}

func TestSessionData_TraceFor(t *testing.T) {
	data := sessionFixture()

	trace, ok := data.TraceFor("VER")
	if !ok {
		t.Fatal("TraceFor(VER) ok = false, want true")
	}
	if len(trace.Samples) != 1 {
		t.Errorf("trace samples = %d, want 1", len(trace.Samples))
	}

	if _, ok := data.TraceFor("ALO"); ok {
		t.Error("TraceFor(ALO) ok = true, want false")
	}
}
