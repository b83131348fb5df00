package monitor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rdeckard/sysmon/internal/ui"
)

const (
	// BarWidth is how many cells a usage bar occupies.
	BarWidth = 50

	// Utilization thresholds for bar and value coloring.
	WarnThreshold = 60.0
	CritThreshold = 85.0

	barFilledChar = "▰"
	barEmptyChar  = "▱"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorInfo)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	okStyle   = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	warnStyle = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	critStyle = lipgloss.NewStyle().Foreground(ui.ColorError)
)

// metricStyle picks the style for a utilization percentage: green below
// WarnThreshold, yellow from there up, red at CritThreshold and beyond.
func metricStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= CritThreshold:
		return critStyle
	case pct >= WarnThreshold:
		return warnStyle
	default:
		return okStyle
	}
}

// Bar renders a fixed-width utilization bar. The filled cell count is the
// percentage scaled to the width and rounded half away from zero, clamped
// to [0, width].
func Bar(width int, pct float64) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(barFilledChar, filled) + strings.Repeat(barEmptyChar, width-filled)
	return metricStyle(pct).Render(bar)
}

// UsageBar renders the standard-width bar for a percentage.
func UsageBar(pct float64) string {
	return Bar(BarWidth, pct)
}
