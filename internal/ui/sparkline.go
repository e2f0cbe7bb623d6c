package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters, lowest to highest of 8 vertical levels.
var sparklineBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderPercentSparkline renders a utilization sparkline on a fixed 0-100
// scale, colored by the most recent value: green under 60, yellow under 80,
// red above. width limits how many of the most recent samples are shown.
func RenderPercentSparkline(data []float64, width int) string {
	line := buildSparkline(data, width, 100)
	if line == "" {
		return ""
	}
	color := thresholdColor(data[len(data)-1])
	return lipgloss.NewStyle().Foreground(color).Render(line)
}

// RenderRateSparkline renders a rate sparkline scaled to the visible peak,
// in a single informational color. Suited to network throughput where there
// is no natural 100% ceiling.
func RenderRateSparkline(data []float64, width int) string {
	peak := 0.0
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	line := buildSparkline(data, width, peak)
	if line == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorInfo).Render(line)
}

// buildSparkline maps the most recent width samples onto block characters
// against the given ceiling. A zero ceiling renders a flat baseline.
func buildSparkline(data []float64, width int, ceiling float64) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)
	levels := len(sparklineBlocks)

	for _, v := range data {
		level := 0
		if ceiling > 0 {
			level = int(v / ceiling * float64(levels-1))
			if level < 0 {
				level = 0
			}
			if level >= levels {
				level = levels - 1
			}
		}
		sb.WriteRune(sparklineBlocks[level])
	}
	return sb.String()
}

func thresholdColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorError
	case percent >= 60:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
