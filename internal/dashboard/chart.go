package dashboard

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// sparkGlyphs are the block characters used for sparkline charts, lowest first.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a series of values as a fixed-width row of block glyphs,
// scaled between the series min and max. A flat series renders at mid height.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	values = resample(values, width)

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	for _, v := range values {
		idx := len(sparkGlyphs) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkGlyphs)-1))
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

// resample reduces or stretches a series to exactly n points by averaging
// proportional buckets.
func resample(values []float64, n int) []float64 {
	if n <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) == n {
		return values
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * len(values) / n
		end := (i + 1) * len(values) / n
		if end <= start {
			end = start + 1
		}
		if end > len(values) {
			end = len(values)
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// hbar renders a horizontal bar of the given fraction of width, at least one
// cell for any positive fraction so small values stay visible.
func hbar(frac float64, width int) string {
	if width <= 0 || frac <= 0 {
		return ""
	}
	if frac > 1 {
		frac = 1
	}
	n := int(frac * float64(width))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// renderTable lays out rows under headers with columns sized to the widest
// cell. Rows wider than width are truncated with an ellipsis.
func renderTable(headers []string, rows [][]string, width int) string {
	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < cols && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts = append(parts, runewidth.FillRight(cell, widths[i]))
		}
		return truncate(strings.TrimRight(strings.Join(parts, "  "), " "), width)
	}

	var b strings.Builder
	b.WriteString(mutedText.Render(line(headers)))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(line(row))
	}
	return b.String()
}

// truncate cuts s to at most width display cells, appending "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
