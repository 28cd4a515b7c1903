package dashboard

import (
	"fmt"
	"strings"

	"github.com/smileynet/pitwall/internal/f1"
)

// telemetryChannel selects one series out of a telemetry trace.
type telemetryChannel struct {
	name string
	unit string
	pick func(f1.TelemetrySample) float64
}

// telemetryChannels are the compared series, in display order.
var telemetryChannels = []telemetryChannel{
	{"Speed", "km/h", func(s f1.TelemetrySample) float64 { return s.Speed }},
	{"Throttle", "%", func(s f1.TelemetrySample) float64 { return s.Throttle }},
	{"Brake", "", func(s f1.TelemetrySample) float64 { return s.Brake }},
}

// TelemetryCompare overlays the fastest-lap telemetry of two drivers as
// per-channel sparklines over lap distance.
func TelemetryCompare(data *f1.SessionData, driver1, driver2 string, width int) string {
	if data == nil || len(data.Telemetry) == 0 {
		return "No telemetry available for this session"
	}

	trace1, ok1 := data.TraceFor(driver1)
	trace2, ok2 := data.TraceFor(driver2)
	if !ok1 && !ok2 {
		return fmt.Sprintf("No telemetry for %s or %s", driver1, driver2)
	}

	// Label column plus a space before the sparkline.
	chartWidth := width - 5
	if chartWidth < 10 {
		chartWidth = 10
	}

	var b strings.Builder
	for i, ch := range telemetryChannels {
		if i > 0 {
			b.WriteString("\n\n")
		}
		title := ch.name
		if ch.unit != "" {
			title += " (" + ch.unit + ")"
		}
		b.WriteString(accentText.Render(title))

		for _, dt := range []struct {
			driver string
			trace  f1.TelemetryTrace
			ok     bool
		}{
			{driver1, trace1, ok1},
			{driver2, trace2, ok2},
		} {
			b.WriteByte('\n')
			if !dt.ok {
				fmt.Fprintf(&b, "%-4s %s", dt.driver, mutedText.Render("no trace"))
				continue
			}
			values := make([]float64, len(dt.trace.Samples))
			for j, s := range dt.trace.Samples {
				values[j] = ch.pick(s)
			}
			fmt.Fprintf(&b, "%-4s %s", dt.driver, sparkline(values, chartWidth))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(mutedText.Render("fastest laps, distance along lap →  d: next driver pair"))
	return b.String()
}
